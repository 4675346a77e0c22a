// Package tray provides system tray functionality using getlantern/systray.
package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"sync"

	"github.com/getlantern/systray"
)

// MenuItem represents a menu item
type MenuItem struct {
	ID        int
	Title     string
	Checkable bool
	Checked   bool
	Callback  func()
	OnToggle  func(checked bool)
	item      *systray.MenuItem
}

// Tray manages the system tray icon and menu
type Tray struct {
	mu      sync.Mutex
	title   string
	tooltip string
	icon    []byte
	items   []*MenuItem
	onReady func()
	readyCh chan struct{}
	quitCh  chan struct{}
}

// New creates a new system tray
func New(title, tooltip string, icon []byte) *Tray {
	return &Tray{
		title:   title,
		tooltip: tooltip,
		icon:    icon,
		items:   make([]*MenuItem, 0),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// AddMenuItem adds a menu item to the tray
func (t *Tray) AddMenuItem(title string, callback func()) int {
	return t.add(&MenuItem{Title: title, Callback: callback})
}

// AddCheckbox adds a checkable item. onToggle receives the new state.
func (t *Tray) AddCheckbox(title string, checked bool, onToggle func(checked bool)) int {
	return t.add(&MenuItem{Title: title, Checkable: true, Checked: checked, OnToggle: onToggle})
}

func (t *Tray) add(mi *MenuItem) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	mi.ID = len(t.items)
	t.items = append(t.items, mi)
	return mi.ID
}

// AddSeparator adds a separator to the menu
func (t *Tray) AddSeparator() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, nil) // nil indicates separator
}

// SetItemChecked sets the checked state of a menu item. It may be called
// before the menu is shown and from any goroutine.
func (t *Tray) SetItemChecked(id int, checked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.items) || t.items[id] == nil {
		return
	}
	mi := t.items[id]
	mi.Checked = checked
	if mi.item != nil {
		if checked {
			mi.item.Check()
		} else {
			mi.item.Uncheck()
		}
	}
}

// ItemChecked reports the recorded state of a checkable item.
func (t *Tray) ItemChecked(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.items) || t.items[id] == nil {
		return false
	}
	return t.items[id].Checked
}

// Run starts the tray event loop (blocks). It must be called from the main
// goroutine. onReady runs once the menu exists.
func (t *Tray) Run(onReady func()) {
	t.onReady = onReady
	systray.Run(t.setupMenu, func() { close(t.quitCh) })
}

// Ready is closed once the menu has been built.
func (t *Tray) Ready() <-chan struct{} {
	return t.readyCh
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	systray.SetTitle(t.title)
	systray.SetTooltip(t.tooltip)
	if len(t.icon) > 0 {
		systray.SetIcon(t.icon)
	}

	t.mu.Lock()
	items := append([]*MenuItem(nil), t.items...)
	for _, menuItem := range items {
		if menuItem == nil {
			systray.AddSeparator()
			continue
		}
		if menuItem.Checkable {
			menuItem.item = systray.AddMenuItemCheckbox(menuItem.Title, "", menuItem.Checked)
		} else {
			menuItem.item = systray.AddMenuItem(menuItem.Title, "")
		}
	}
	t.mu.Unlock()

	for _, menuItem := range items {
		if menuItem == nil {
			continue
		}
		go t.serveItem(menuItem)
	}

	close(t.readyCh)
	if t.onReady != nil {
		t.onReady()
	}
}

// serveItem handles clicks in its own goroutine until the tray exits.
func (t *Tray) serveItem(mi *MenuItem) {
	for {
		select {
		case <-mi.item.ClickedCh:
			t.click(mi)
		case <-t.quitCh:
			return
		}
	}
}

func (t *Tray) click(mi *MenuItem) {
	if !mi.Checkable {
		if mi.Callback != nil {
			mi.Callback()
		}
		return
	}

	t.mu.Lock()
	checked := !mi.Checked
	t.mu.Unlock()
	t.SetItemChecked(mi.ID, checked)
	if mi.OnToggle != nil {
		mi.OnToggle(checked)
	}
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}

// IconFromImage encodes img as a single-image ICO file with PNG payload,
// which the Windows tray accepts directly.
func IconFromImage(img image.Image) ([]byte, error) {
	var payload bytes.Buffer
	if err := png.Encode(&payload, img); err != nil {
		return nil, err
	}

	b := img.Bounds()
	dim := func(n int) byte {
		if n >= 256 {
			return 0 // 0 means 256
		}
		return byte(n)
	}

	var out bytes.Buffer
	// ICONDIR
	binary.Write(&out, binary.LittleEndian, [3]uint16{0, 1, 1})
	// ICONDIRENTRY
	out.Write([]byte{dim(b.Dx()), dim(b.Dy()), 0, 0})
	binary.Write(&out, binary.LittleEndian, [2]uint16{1, 32})
	binary.Write(&out, binary.LittleEndian, [2]uint32{uint32(payload.Len()), 6 + 16})
	out.Write(payload.Bytes())
	return out.Bytes(), nil
}
