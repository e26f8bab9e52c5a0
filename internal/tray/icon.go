package tray

import (
	"bytes"
	"encoding/binary"
)

// Icon returns the tray icon, a 16x16 d-pad cross rendered as a
// single-image ICO.
func Icon() []byte {
	const size = 16

	// 32-bit BGRA pixels, bottom-up as the BMP layout wants them.
	xor := make([]byte, size*size*4)
	// 1-bit AND mask with DWORD-aligned rows.
	and := make([]byte, 4*size)

	set := func(x, y int) {
		row := size - 1 - y
		off := (row*size + x) * 4
		xor[off+0] = 0xe6
		xor[off+1] = 0xe6
		xor[off+2] = 0xe6
		xor[off+3] = 0xff
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			vertical := x >= 6 && x <= 9 && y >= 2 && y <= 13
			horizontal := y >= 6 && y <= 9 && x >= 2 && x <= 13
			if vertical || horizontal {
				set(x, y)
			}
		}
	}

	var dib bytes.Buffer
	// BITMAPINFOHEADER; the height doubles to cover the AND mask.
	binary.Write(&dib, binary.LittleEndian, uint32(40))
	binary.Write(&dib, binary.LittleEndian, int32(size))
	binary.Write(&dib, binary.LittleEndian, int32(size*2))
	binary.Write(&dib, binary.LittleEndian, uint16(1))  // planes
	binary.Write(&dib, binary.LittleEndian, uint16(32)) // bits per pixel
	binary.Write(&dib, binary.LittleEndian, uint32(0))  // BI_RGB
	binary.Write(&dib, binary.LittleEndian, uint32(len(xor)+len(and)))
	binary.Write(&dib, binary.LittleEndian, int32(0))
	binary.Write(&dib, binary.LittleEndian, int32(0))
	binary.Write(&dib, binary.LittleEndian, uint32(0))
	binary.Write(&dib, binary.LittleEndian, uint32(0))
	dib.Write(xor)
	dib.Write(and)

	var ico bytes.Buffer
	// ICONDIR with one entry.
	binary.Write(&ico, binary.LittleEndian, uint16(0)) // reserved
	binary.Write(&ico, binary.LittleEndian, uint16(1)) // type: icon
	binary.Write(&ico, binary.LittleEndian, uint16(1)) // image count
	// ICONDIRENTRY
	ico.WriteByte(size)
	ico.WriteByte(size)
	ico.WriteByte(0) // palette colors
	ico.WriteByte(0) // reserved
	binary.Write(&ico, binary.LittleEndian, uint16(1))  // planes
	binary.Write(&ico, binary.LittleEndian, uint16(32)) // bits per pixel
	binary.Write(&ico, binary.LittleEndian, uint32(dib.Len()))
	binary.Write(&ico, binary.LittleEndian, uint32(6+16)) // data offset
	ico.Write(dib.Bytes())

	return ico.Bytes()
}
