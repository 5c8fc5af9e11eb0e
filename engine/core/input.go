package core

import (
	"sync"

	"golang.org/x/exp/slices"
)

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions
type KeyCode uint16

const (
	KEY_UNKNOWN   KeyCode = 0x00
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_PAUSE     KeyCode = 0x13
	KEY_CAPITAL   KeyCode = 0x14
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_PRIOR     KeyCode = 0x21
	KEY_NEXT      KeyCode = 0x22
	KEY_END       KeyCode = 0x23
	KEY_HOME      KeyCode = 0x24
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_INSERT    KeyCode = 0x2D
	KEY_DELETE    KeyCode = 0x2E
	KEY_A         KeyCode = 0x41
	KEY_B         KeyCode = 0x42
	KEY_C         KeyCode = 0x43
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_F         KeyCode = 0x46
	KEY_G         KeyCode = 0x47
	KEY_H         KeyCode = 0x48
	KEY_I         KeyCode = 0x49
	KEY_J         KeyCode = 0x4A
	KEY_K         KeyCode = 0x4B
	KEY_L         KeyCode = 0x4C
	KEY_M         KeyCode = 0x4D
	KEY_N         KeyCode = 0x4E
	KEY_O         KeyCode = 0x4F
	KEY_P         KeyCode = 0x50
	KEY_Q         KeyCode = 0x51
	KEY_R         KeyCode = 0x52
	KEY_S         KeyCode = 0x53
	KEY_T         KeyCode = 0x54
	KEY_U         KeyCode = 0x55
	KEY_V         KeyCode = 0x56
	KEY_W         KeyCode = 0x57
	KEY_X         KeyCode = 0x58
	KEY_Y         KeyCode = 0x59
	KEY_Z         KeyCode = 0x5A
	KEY_F1        KeyCode = 0x70
	KEY_F2        KeyCode = 0x71
	KEY_F3        KeyCode = 0x72
	KEY_F4        KeyCode = 0x73
	KEY_F5        KeyCode = 0x74
	KEY_F6        KeyCode = 0x75
	KEY_F7        KeyCode = 0x76
	KEY_F8        KeyCode = 0x77
	KEY_F9        KeyCode = 0x78
	KEY_F10       KeyCode = 0x79
	KEY_F11       KeyCode = 0x7A
	KEY_F12       KeyCode = 0x7B
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3
	KEY_LMENU     KeyCode = 0xA4
	KEY_RMENU     KeyCode = 0xA5
	KEYS_MAX_KEYS KeyCode = 0xFF
)

// InputSnapshot is the copy of the input state handed to one frame.
type InputSnapshot struct {
	// Keys held at drain time, in ascending order.
	Keys      []KeyCode
	PointerDX float32
	PointerDY float32
}

func (s InputSnapshot) IsKeyDown(key KeyCode) bool {
	_, found := slices.BinarySearch(s.Keys, key)
	return found
}

// InputBridge is written by the window callbacks and drained by the frame
// loop. The lock is only held to copy or update the state.
type InputBridge struct {
	mu      sync.Mutex
	pressed map[KeyCode]struct{}
	dx, dy  float32

	cursorX, cursorY float64
	cursorSeeded     bool

	events *EventBus
}

// NewInputBridge fires key and mouse events on bus after the state changed.
// bus can be nil.
func NewInputBridge(bus *EventBus) *InputBridge {
	return &InputBridge{
		pressed: make(map[KeyCode]struct{}),
		events:  bus,
	}
}

// ProcessKey records a press or release. Repeated presses of a held key are
// ignored.
func (b *InputBridge) ProcessKey(key KeyCode, pressed bool) {
	b.mu.Lock()
	_, down := b.pressed[key]
	changed := down != pressed
	if pressed {
		b.pressed[key] = struct{}{}
	} else {
		delete(b.pressed, key)
	}
	b.mu.Unlock()

	if !changed || b.events == nil {
		return
	}
	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	// Fire off an event for immediate processing.
	b.events.Fire(EventContext{
		Type: code,
		Data: &KeyEvent{KeyCode: key},
	})
}

func (b *InputBridge) ProcessButton(button Button, pressed bool) {
	if b.events == nil {
		return
	}
	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
	}
	b.events.Fire(EventContext{
		Type: code,
		Data: &MouseEvent{Button: button},
	})
}

// ProcessPointerMove adds a relative pointer motion to the accumulator.
func (b *InputBridge) ProcessPointerMove(dx, dy float32) {
	b.mu.Lock()
	b.dx += dx
	b.dy += dy
	b.mu.Unlock()
}

// ProcessCursor converts absolute cursor positions into relative motion.
// The first sample only seeds the previous position.
func (b *InputBridge) ProcessCursor(x, y float64) {
	b.mu.Lock()
	if b.cursorSeeded {
		b.dx += float32(x - b.cursorX)
		b.dy += float32(y - b.cursorY)
	}
	b.cursorX, b.cursorY = x, y
	b.cursorSeeded = true
	b.mu.Unlock()

	if b.events != nil {
		b.events.Fire(EventContext{
			Type: EVENT_CODE_MOUSE_MOVED,
			Data: &MouseEvent{PosX: x, PosY: y},
		})
	}
}

// Drain copies the pressed keys, copies and resets the pointer delta. It
// waits for a writer holding the lock, writers only hold it to update a
// field or two.
func (b *InputBridge) Drain() InputSnapshot {
	b.mu.Lock()
	snapshot := InputSnapshot{
		Keys:      make([]KeyCode, 0, len(b.pressed)),
		PointerDX: b.dx,
		PointerDY: b.dy,
	}
	for k := range b.pressed {
		snapshot.Keys = append(snapshot.Keys, k)
	}
	b.dx, b.dy = 0, 0
	b.mu.Unlock()

	slices.Sort(snapshot.Keys)
	return snapshot
}

// IsKeyDown reports the live state of key.
func (b *InputBridge) IsKeyDown(key KeyCode) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, down := b.pressed[key]
	return down
}
