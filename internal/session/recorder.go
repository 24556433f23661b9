package session

import (
	"slices"
)

// Call is one recorded setter invocation.
type Call struct {
	Method string
	Args   []interface{}
}

// Recorder is an in-memory Session. It keeps the last value passed to each
// setter and a log of every call, which makes it usable both as a stand-in
// terminal for the CLI and as a test double.
type Recorder struct {
	Program         string
	Arguments       []string
	Directory       string
	Environment     []string
	IconName        string
	KeyBindings     string
	TabTitleFormats map[TabTitleContext]string
	History         HistoryType
	FlowControl     bool
	Codec           Codec
	SilenceSeconds  int
	CJKAmbiguous    bool
	Titles          map[TitleRole]string

	// CallLog records all setter calls in order.
	CallLog []Call
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		TabTitleFormats: make(map[TabTitleContext]string),
		Titles:          make(map[TitleRole]string),
	}
}

func (r *Recorder) record(method string, args ...interface{}) {
	r.CallLog = append(r.CallLog, Call{Method: method, Args: args})
}

// CallsFor returns the recorded calls of one setter.
func (r *Recorder) CallsFor(method string) []Call {
	var out []Call
	for _, c := range r.CallLog {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Methods returns the distinct setter names called, in first-call order.
func (r *Recorder) Methods() []string {
	var out []string
	for _, c := range r.CallLog {
		if !slices.Contains(out, c.Method) {
			out = append(out, c.Method)
		}
	}
	return out
}

// Reset clears the call log but keeps the recorded state.
func (r *Recorder) Reset() {
	r.CallLog = nil
}

func (r *Recorder) SetProgram(program string) {
	r.record("SetProgram", program)
	r.Program = program
}

func (r *Recorder) SetArguments(args []string) {
	r.record("SetArguments", args)
	r.Arguments = slices.Clone(args)
}

func (r *Recorder) SetInitialWorkingDirectory(dir string) {
	r.record("SetInitialWorkingDirectory", dir)
	r.Directory = dir
}

func (r *Recorder) SetEnvironment(env []string) {
	r.record("SetEnvironment", env)
	r.Environment = slices.Clone(env)
}

func (r *Recorder) SetIconName(name string) {
	r.record("SetIconName", name)
	r.IconName = name
}

func (r *Recorder) SetKeyBindings(id string) {
	r.record("SetKeyBindings", id)
	r.KeyBindings = id
}

func (r *Recorder) SetTabTitleFormat(ctx TabTitleContext, format string) {
	r.record("SetTabTitleFormat", ctx, format)
	if r.TabTitleFormats == nil {
		r.TabTitleFormats = make(map[TabTitleContext]string)
	}
	r.TabTitleFormats[ctx] = format
}

func (r *Recorder) SetHistoryType(h HistoryType) {
	r.record("SetHistoryType", h)
	r.History = h
}

func (r *Recorder) SetFlowControlEnabled(enabled bool) {
	r.record("SetFlowControlEnabled", enabled)
	r.FlowControl = enabled
}

func (r *Recorder) SetCodec(c Codec) {
	r.record("SetCodec", c.Name)
	r.Codec = c
}

func (r *Recorder) SetMonitorSilenceSeconds(seconds int) {
	r.record("SetMonitorSilenceSeconds", seconds)
	r.SilenceSeconds = seconds
}

func (r *Recorder) SetCJKAmbiguousWide(wide bool) {
	r.record("SetCJKAmbiguousWide", wide)
	r.CJKAmbiguous = wide
}

func (r *Recorder) SetTitle(role TitleRole, title string) {
	r.record("SetTitle", role, title)
	if r.Titles == nil {
		r.Titles = make(map[TitleRole]string)
	}
	r.Titles[role] = title
}
