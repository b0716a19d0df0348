// image.go implements the 64 KiB target image and its cursors: addr, pc, pc_org, and the
// pc_lowest/pc_highest watermarks that bound the final binary output.

package asm

// Image holds the assembled byte array and the cursors the directive engine and opcode encoder
// advance as they emit bytes.
type Image struct {
	Bytes [0x10000]byte

	Addr      int    // Signed; may transiently leave [0, 0x10000] so overflow is detectable.
	PC        uint16 // addr masked to 16 bits.
	PCOrg     uint16 // Start of the current output fragment, set by ORG and by DS.
	PCLowest  uint16
	PCHighest uint16
	wrote     bool
}

// Reset zeroes the image and cursors at the start of a pass.
func (img *Image) Reset() {
	*img = Image{PCLowest: 0xFFFF, PCHighest: 0}
}

// Org sets pc and pc_org to addr, as the ORG directive does. addr is already a 16-bit value, and
// neither Org nor the directive engine performs a range check on it.
func (img *Image) Org(addr uint16) {
	img.Addr = int(addr)
	img.PC = addr
	img.PCOrg = addr
}

// DumpBin writes data[:n] into Bytes[pc..] and advances pc and the watermarks. n is clamped to
// len(data).
func (img *Image) DumpBin(data []byte, n int) {
	if n > len(data) {
		n = len(data)
	}

	for i := 0; i < n; i++ {
		addr := img.PC + uint16(i)
		img.Bytes[addr] = data[i]

		if !img.wrote || addr < img.PCLowest {
			img.PCLowest = addr
		}

		if !img.wrote || addr > img.PCHighest {
			img.PCHighest = addr
		}

		img.wrote = true
	}

	img.Addr += n
	img.PC += uint16(n)
}

// Reserve advances pc by n bytes (DS) without touching the watermarks, and resets pc_org so the
// next emitted fragment starts a fresh HEX record.
func (img *Image) Reserve(n uint16) {
	img.Addr += int(n)
	img.PC += n
	img.PCOrg = img.PC
}

// Binary returns the final output: Bytes[pc_lowest..pc_highest] inclusive. An image that never
// wrote a byte yields an empty slice.
func (img *Image) Binary() []byte {
	if !img.wrote {
		return nil
	}

	return img.Bytes[img.PCLowest : int(img.PCHighest)+1]
}
