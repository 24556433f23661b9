package property

// Enumerated values stored as integers in profiles.

// HistoryModeValue selects the scrollback strategy of a session.
type HistoryModeValue int

const (
	DisableHistory   HistoryModeValue = 0
	FixedSizeHistory HistoryModeValue = 1
	UnlimitedHistory HistoryModeValue = 2
)

// TabBarModeValue controls tab bar visibility.
type TabBarModeValue int

const (
	AlwaysHideTabBar   TabBarModeValue = 0
	ShowTabBarAsNeeded TabBarModeValue = 1
	AlwaysShowTabBar   TabBarModeValue = 2
)

// TabBarPositionValue places the tab bar.
type TabBarPositionValue int

const (
	TabBarBottom TabBarPositionValue = 0
	TabBarTop    TabBarPositionValue = 1
)

// NewTabBehaviorValue decides where new tabs are inserted.
type NewTabBehaviorValue int

const (
	PutNewTabAtTheEnd        NewTabBehaviorValue = 0
	PutNewTabAfterCurrentTab NewTabBehaviorValue = 1
)

// ScrollBarPositionValue places the scroll bar.
type ScrollBarPositionValue int

const (
	ScrollBarLeft   ScrollBarPositionValue = 0
	ScrollBarRight  ScrollBarPositionValue = 1
	ScrollBarHidden ScrollBarPositionValue = 2
)

// CursorShapeValue is the terminal cursor shape.
type CursorShapeValue int

const (
	BlockCursor     CursorShapeValue = 0
	IBeamCursor     CursorShapeValue = 1
	UnderlineCursor CursorShapeValue = 2
)

// TripleClickModeValue is the selection behavior on triple click.
type TripleClickModeValue int

const (
	SelectWholeLine          TripleClickModeValue = 0
	SelectForwardsFromCursor TripleClickModeValue = 1
)
