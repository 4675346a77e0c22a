//go:build windows

package window

import (
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	gdi32                   = windows.NewLazySystemDLL("gdi32.dll")
	kernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procRegisterClassEx     = user32.NewProc("RegisterClassExW")
	procCreateWindowEx      = user32.NewProc("CreateWindowExW")
	procDefWindowProc       = user32.NewProc("DefWindowProcW")
	procDestroyWindow       = user32.NewProc("DestroyWindow")
	procShowWindow          = user32.NewProc("ShowWindow")
	procPeekMessage         = user32.NewProc("PeekMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessage     = user32.NewProc("DispatchMessageW")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procUpdateLayeredWindow = user32.NewProc("UpdateLayeredWindow")
	procGetDC               = user32.NewProc("GetDC")
	procReleaseDC           = user32.NewProc("ReleaseDC")
	procGetWindowLong       = user32.NewProc(longProcName("GetWindowLong"))
	procSetWindowLong       = user32.NewProc(longProcName("SetWindowLong"))
	procCreateCompatibleDC  = gdi32.NewProc("CreateCompatibleDC")
	procCreateDIBSection    = gdi32.NewProc("CreateDIBSection")
	procSelectObject        = gdi32.NewProc("SelectObject")
	procDeleteObject        = gdi32.NewProc("DeleteObject")
	procDeleteDC            = gdi32.NewProc("DeleteDC")
	procGetModuleHandle     = kernel32.NewProc("GetModuleHandleW")
)

const (
	WS_POPUP          = 0x80000000
	GWL_EXSTYLE       = -20
	SW_SHOWNOACTIVATE = 4
	PM_REMOVE         = 1
	WM_DESTROY        = 0x0002
	WM_CLOSE          = 0x0010
	WM_QUIT           = 0x0012
	WM_NCHITTEST      = 0x0084
	HTCAPTION         = 2
	DIB_RGB_COLORS    = 0
	BI_RGB            = 0
	AC_SRC_OVER       = 0
	AC_SRC_ALPHA      = 1
	ULW_ALPHA         = 2
)

// longProcName picks the pointer-sized window long accessor. 32-bit user32
// only exports the plain variant.
func longProcName(base string) string {
	if unsafe.Sizeof(uintptr(0)) == 8 {
		return base + "PtrW"
	}
	return base + "W"
}

type WNDCLASSEX struct {
	CbSize        uint32
	Style         uint32
	LpfnWndProc   uintptr
	CbClsExtra    int32
	CbWndExtra    int32
	HInstance     windows.Handle
	HIcon         windows.Handle
	HCursor       windows.Handle
	HbrBackground windows.Handle
	LpszMenuName  *uint16
	LpszClassName *uint16
	HIconSm       windows.Handle
}

type MSG struct {
	Hwnd    windows.HWND
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      POINT
}

type POINT struct {
	X, Y int32
}

type SIZE struct {
	CX, CY int32
}

type RECT struct {
	Left, Top, Right, Bottom int32
}

type BITMAPINFOHEADER struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

type BLENDFUNCTION struct {
	BlendOp             byte
	BlendFlags          byte
	SourceConstantAlpha byte
	AlphaFormat         byte
}

const className = "KeyboimOverlay"

var (
	wndProcCallback = windows.NewCallback(wndProc)
	classRegistered bool

	// open windows by handle; touched only by the thread that owns them
	windowsByHandle = map[windows.HWND]*Window{}
)

// Window is a layered popup window presented with UpdateLayeredWindow. It
// must be used from the OS thread that opened it.
type Window struct {
	hwnd     windows.HWND
	width    int
	height   int
	closed   bool
	screenDC uintptr
	memDC    uintptr
	bitmap   uintptr
	oldBmp   uintptr
	pixels   []byte
}

// Open creates and shows the window on the calling OS thread.
func Open(opts Options) (*Window, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", opts.Width, opts.Height)
	}

	hInstance, _, _ := procGetModuleHandle.Call(0)
	classNamePtr, err := windows.UTF16PtrFromString(className)
	if err != nil {
		return nil, err
	}

	if !classRegistered {
		wndClass := WNDCLASSEX{
			CbSize:        uint32(unsafe.Sizeof(WNDCLASSEX{})),
			LpfnWndProc:   wndProcCallback,
			HInstance:     windows.Handle(hInstance),
			LpszClassName: classNamePtr,
		}
		ret, _, err := procRegisterClassEx.Call(uintptr(unsafe.Pointer(&wndClass)))
		if ret == 0 {
			return nil, fmt.Errorf("RegisterClassEx failed: %v", err)
		}
		classRegistered = true
	}

	title, err := windows.UTF16PtrFromString(opts.Title)
	if err != nil {
		return nil, err
	}

	hwnd, _, err := procCreateWindowEx.Call(
		WS_EX_LAYERED|WS_EX_TOPMOST|WS_EX_TOOLWINDOW,
		uintptr(unsafe.Pointer(classNamePtr)),
		uintptr(unsafe.Pointer(title)),
		WS_POPUP,
		uintptr(opts.X), uintptr(opts.Y), uintptr(opts.Width), uintptr(opts.Height),
		0, 0, hInstance, 0,
	)
	if hwnd == 0 {
		return nil, fmt.Errorf("CreateWindowEx failed: %v", err)
	}

	w := &Window{
		hwnd:   windows.HWND(hwnd),
		width:  opts.Width,
		height: opts.Height,
	}
	windowsByHandle[w.hwnd] = w

	if err := w.createSurface(); err != nil {
		w.Close()
		return nil, err
	}

	procShowWindow.Call(hwnd, SW_SHOWNOACTIVATE)
	return w, nil
}

// createSurface allocates the top-down 32-bit DIB frames are copied into.
func (w *Window) createSurface() error {
	w.screenDC, _, _ = procGetDC.Call(0)
	if w.screenDC == 0 {
		return fmt.Errorf("GetDC failed")
	}
	w.memDC, _, _ = procCreateCompatibleDC.Call(w.screenDC)
	if w.memDC == 0 {
		return fmt.Errorf("CreateCompatibleDC failed")
	}

	header := BITMAPINFOHEADER{
		BiSize:        uint32(unsafe.Sizeof(BITMAPINFOHEADER{})),
		BiWidth:       int32(w.width),
		BiHeight:      -int32(w.height),
		BiPlanes:      1,
		BiBitCount:    32,
		BiCompression: BI_RGB,
	}
	var bits unsafe.Pointer
	bmp, _, err := procCreateDIBSection.Call(
		w.memDC,
		uintptr(unsafe.Pointer(&header)),
		DIB_RGB_COLORS,
		uintptr(unsafe.Pointer(&bits)),
		0, 0,
	)
	if bmp == 0 || bits == nil {
		return fmt.Errorf("CreateDIBSection failed: %v", err)
	}
	w.bitmap = bmp
	w.oldBmp, _, _ = procSelectObject.Call(w.memDC, bmp)
	w.pixels = unsafe.Slice((*byte)(bits), w.width*w.height*4)
	return nil
}

// wndProc handles window messages
func wndProc(hwnd windows.HWND, msg uint32, wparam, lparam uintptr) uintptr {
	switch msg {
	case WM_NCHITTEST:
		// The whole window drags when it is not click-through.
		return HTCAPTION
	case WM_CLOSE:
		procDestroyWindow.Call(uintptr(hwnd))
		return 0
	case WM_DESTROY:
		if w, ok := windowsByHandle[hwnd]; ok {
			w.closed = true
			delete(windowsByHandle, hwnd)
		}
		return 0
	}
	ret, _, _ := procDefWindowProc.Call(uintptr(hwnd), uintptr(msg), wparam, lparam)
	return ret
}

// Pump dispatches pending messages without blocking.
func (w *Window) Pump() bool {
	var msg MSG
	for {
		ret, _, _ := procPeekMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0, PM_REMOVE)
		if ret == 0 {
			break
		}
		if msg.Message == WM_QUIT {
			w.closed = true
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&msg)))
	}
	return !w.closed
}

// Present copies a premultiplied RGBA frame of the window's size into the
// DIB and updates the layered window from it.
func (w *Window) Present(img *image.RGBA) error {
	if w.closed {
		return ErrClosed
	}
	if img.Rect.Dx() != w.width || img.Rect.Dy() != w.height {
		return fmt.Errorf("frame is %dx%d, window is %dx%d", img.Rect.Dx(), img.Rect.Dy(), w.width, w.height)
	}
	toBGRA(w.pixels, img.Pix)

	size := SIZE{CX: int32(w.width), CY: int32(w.height)}
	var src POINT
	blend := BLENDFUNCTION{
		BlendOp:             AC_SRC_OVER,
		SourceConstantAlpha: 255,
		AlphaFormat:         AC_SRC_ALPHA,
	}
	ret, _, err := procUpdateLayeredWindow.Call(
		uintptr(w.hwnd),
		w.screenDC,
		0,
		uintptr(unsafe.Pointer(&size)),
		w.memDC,
		uintptr(unsafe.Pointer(&src)),
		0,
		uintptr(unsafe.Pointer(&blend)),
		ULW_ALPHA,
	)
	if ret == 0 {
		return fmt.Errorf("UpdateLayeredWindow failed: %v", err)
	}
	return nil
}

func (w *Window) exStyle() (uint32, error) {
	index := int32(GWL_EXSTYLE)
	ret, _, err := procGetWindowLong.Call(uintptr(w.hwnd), uintptr(index))
	if ret == 0 && err != windows.ERROR_SUCCESS {
		return 0, fmt.Errorf("GetWindowLong failed: %w", err)
	}
	return uint32(ret), nil
}

// SetClickThrough switches pointer pass-through with a single
// read-modify-write of the extended style.
func (w *Window) SetClickThrough(on bool) error {
	if w.closed {
		return ErrClosed
	}
	style, err := w.exStyle()
	if err != nil {
		return err
	}
	next := DisableClickThrough(style)
	if on {
		next = EnableClickThrough(style)
	}
	if next == style {
		return nil
	}
	index := int32(GWL_EXSTYLE)
	ret, _, err := procSetWindowLong.Call(uintptr(w.hwnd), uintptr(index), uintptr(next))
	if ret == 0 && err != windows.ERROR_SUCCESS {
		return fmt.Errorf("SetWindowLong failed: %w", err)
	}
	return nil
}

// ClickThrough reports whether pointer input currently passes through.
func (w *Window) ClickThrough() bool {
	style, err := w.exStyle()
	return err == nil && IsClickThrough(style)
}

// Position returns the window's top-left corner in screen coordinates.
func (w *Window) Position() (int, int) {
	var r RECT
	procGetWindowRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r)))
	return int(r.Left), int(r.Top)
}

// Close destroys the window and releases its drawing resources.
func (w *Window) Close() error {
	if !w.closed && w.hwnd != 0 {
		procDestroyWindow.Call(uintptr(w.hwnd))
		w.closed = true
	}
	delete(windowsByHandle, w.hwnd)
	if w.memDC != 0 {
		if w.oldBmp != 0 {
			procSelectObject.Call(w.memDC, w.oldBmp)
		}
		if w.bitmap != 0 {
			procDeleteObject.Call(w.bitmap)
		}
		procDeleteDC.Call(w.memDC)
		w.memDC = 0
	}
	if w.screenDC != 0 {
		procReleaseDC.Call(0, w.screenDC)
		w.screenDC = 0
	}
	w.pixels = nil
	return nil
}
