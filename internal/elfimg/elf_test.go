package elfimg

import (
	"encoding/binary"
	"testing"
)

func TestBuildHeaderMagicAndClass(t *testing.T) {
	img := Build([]byte{0xc3}, 16)
	want := []byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0}
	if string(img[:8]) != string(want) {
		t.Fatalf("e_ident prefix = % x, want % x", img[:8], want)
	}
}

func TestBuildFixedVaddr(t *testing.T) {
	img := Build([]byte{0xc3}, 16)
	pVaddr := binary.LittleEndian.Uint64(img[headerSize-40 : headerSize-32])
	if pVaddr != vaddr {
		t.Errorf("p_vaddr = %#x, want %#x", pVaddr, vaddr)
	}
}

func TestBuildEntryPointPastPadding(t *testing.T) {
	text := []byte{0xc3}
	img := Build(text, 16)
	entry := binary.LittleEndian.Uint64(img[24:32])

	pad := paddingFor(headerSize, 16)
	wantEntry := uint64(vaddr + headerSize + len(pad))
	if entry != wantEntry {
		t.Errorf("e_entry = %#x, want %#x", entry, wantEntry)
	}
}

func TestBuildFileAndMemSizeMatchWholeImage(t *testing.T) {
	text := []byte{0xc3, 0xc3, 0xc3}
	img := Build(text, 16)
	fileSize := binary.LittleEndian.Uint64(img[headerSize-24 : headerSize-16])
	memSize := binary.LittleEndian.Uint64(img[headerSize-16 : headerSize-8])
	if fileSize != uint64(len(img)) {
		t.Errorf("p_filesz = %d, want %d (whole image)", fileSize, len(img))
	}
	if memSize != fileSize {
		t.Errorf("p_memsz = %d, want p_filesz %d", memSize, fileSize)
	}
}

func TestBuildTextBytesLandAtEndOfImage(t *testing.T) {
	text := []byte{0xde, 0xad, 0xbe, 0xef}
	img := Build(text, 16)
	got := img[len(img)-len(text):]
	if string(got) != string(text) {
		t.Errorf("trailing bytes = % x, want % x", got, text)
	}
}

func TestPaddingForZeroAlignmentIsNoop(t *testing.T) {
	if pad := paddingFor(123, 0); pad != nil {
		t.Errorf("expected nil padding when alignment is 0, got % x", pad)
	}
}

func TestPaddingForAlignsToBoundary(t *testing.T) {
	pad := paddingFor(120, 16)
	if len(pad) == 0 || (120+len(pad))%16 != 0 {
		t.Errorf("padding length %d does not align 120 to 16", len(pad))
	}
	if pad[0] != 0xcc {
		t.Errorf("padding must start with an int3 sentinel, got %#x", pad[0])
	}
}
