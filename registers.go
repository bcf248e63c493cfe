package ili9341

// Registers (from the ILI9341 datasheet, pp. 83-88).
const (
	ili9341NOP     = 0x00
	ili9341SWRESET = 0x01 // Software Reset
	ili9341SLPIN   = 0x10
	ili9341SLPOUT  = 0x11 // Sleep Out
	ili9341NORON   = 0x13
	ili9341INVOFF  = 0x20 // Display Inversion OFF
	ili9341INVON   = 0x21 // Display Inversion ON
	ili9341DISPOFF = 0x28 // Display OFF
	ili9341DISPON  = 0x29 // Display ON
	ili9341CASET   = 0x2A // Column Address Set
	ili9341PASET   = 0x2B // Page Address Set
	ili9341RAMWR   = 0x2C // Memory Write
	ili9341MADCTL  = 0x36 // Memory Access Control
	ili9341PIXFMT  = 0x3A // Interface Pixel Format
	ili9341IFMODE  = 0xB0 // RGB Interface Signal Control
)

// Memory Access Control (MADCTL) bit fields.
const (
	_                         byte = 1 << iota // D0: reserved
	_                                          // D1: reserved
	madctlHorizontalRefresh                    // D2: MH
	madctlBGR                                  // D3: BGR
	madctlVerticalRefresh                      // D4: ML
	madctlRowColumnExchange                    // D5: MV
	madctlColumnAddressOrder                   // D6: MX
	madctlRowAddressOrder                      // D7: MY
)

// Pixel formats for ili9341PIXFMT, read and write nibbles.
const (
	pixelFormat16 = 0x55 // 16 bits per pixel, RGB565 on read and write
)
