package codec

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestDetect_XLSXMagic(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}

	c, err := Detect(buf.Bytes())
	if err != nil {
		t.Fatalf("detect xlsx: %v", err)
	}
	if _, ok := c.(*XLSX); !ok {
		t.Fatalf("detected %T, want *XLSX", c)
	}
}

func TestDetect_OLEMagic(t *testing.T) {
	t.Parallel()

	// 只验证魔数路由，不要求字节构成完整的 BIFF 容器
	data := append([]byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}, make([]byte, 512)...)
	c, err := Detect(data)
	if err != nil {
		t.Fatalf("detect ole: %v", err)
	}
	if _, ok := c.(*XLS); !ok {
		t.Fatalf("detected %T, want *XLS", c)
	}
}

func TestDetect_UnknownMagic(t *testing.T) {
	t.Parallel()

	cases := [][]byte{
		nil,
		[]byte{0x50},
		[]byte("plain text disguised as a workbook"),
	}
	for _, data := range cases {
		if _, err := Detect(data); err == nil {
			t.Fatalf("detect %q: expected error", data)
		} else {
			var se *StructuralError
			if !errors.As(err, &se) {
				t.Fatalf("detect %q: error %T, want *StructuralError", data, err)
			}
		}
	}
}

func TestStructuralError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("底层错误")
	err := structuralf(cause, "容器损坏")
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("error %T, want *StructuralError", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("unwrap should reach cause")
	}
}
