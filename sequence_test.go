package ili9341

import (
	"bytes"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func TestRunSequence(t *testing.T) {
	table, err := ParseTable([]byte{0x11, 0x00, DelayMarker, 150, 0x29, 0x00, 0x00})
	if err != nil {
		t.Fatal(err)
	}

	d, r := testDriver(t)
	if err = d.RunSequence(table); err != nil {
		t.Fatal(err)
	}
	testSegments(t, r, []string{
		"11:",
		"delay:150ms",
		"29:",
	})
	if n := len(r.data()); n != 0 {
		t.Errorf("expected no data bytes, got %d", n)
	}
}

func TestRunSequenceParams(t *testing.T) {
	d, r := testDriver(t)
	if err := d.RunSequence(ResetOffTable); err != nil {
		t.Fatal(err)
	}
	testSegments(t, r, []string{
		"01:",
		"delay:150ms",
		"28:",
		"3a: 55",
	})

	r.clear()
	if err := d.RunSequence(WakeOnTable); err != nil {
		t.Fatal(err)
	}
	testSegments(t, r, []string{
		"11:",
		"delay:150ms",
		"29:",
		"20:",
		"36: 48",
		"b0: 40",
	})
}

func TestRunSequenceError(t *testing.T) {
	d, r := testDriver(t)
	r.failData = errors.New("bus fault")
	err := d.RunSequence(MustTable(Cmd(0x11), Cmd(0x36, 0x48), Cmd(0x29)))
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Cause(err) != r.failData {
		t.Errorf("expected cause %v, got %v", r.failData, errors.Cause(err))
	}
	for _, e := range r.events {
		if e.op == opCommand && e.b == 0x29 {
			t.Error("expected sequence to stop at the failing record")
		}
	}
}

func TestParseTable(t *testing.T) {
	tests := []struct {
		Name string
		Data []byte
		Len  int
		Err  error
	}{
		{"empty", []byte{0x00}, 0, nil},
		{"trailing", []byte{0x29, 0x00, 0x00, 0xFF, 0xFF}, 1, nil},
		{"params", []byte{0x36, 0x01, 0x48, 0x3A, 0x01, 0x55, 0x00}, 2, nil},
		{"no terminator", []byte{0x29, 0x00}, 0, ErrTableUnterminated},
		{"nothing", nil, 0, ErrTableUnterminated},
		{"short params", []byte{0x36, 0x02, 0x48}, 0, ErrTableTruncated},
		{"short length", []byte{0x36}, 0, ErrTableTruncated},
		{"short delay", []byte{DelayMarker}, 0, ErrTableTruncated},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			table, err := ParseTable(test.Data)
			if errors.Cause(err) != test.Err {
				it.Fatalf("expected error %v, got %v", test.Err, err)
			}
			if table.Len() != test.Len {
				it.Errorf("expected %d records, got %d", test.Len, table.Len())
			}
		})
	}
}

func TestTableMarshalBinary(t *testing.T) {
	b, err := ResetOffTable.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x01, 0x00, 0x55, 150, 0x28, 0x00, 0x3A, 0x01, 0x55, 0x00}
	if !bytes.Equal(b, want) {
		t.Errorf("expected % x, got % x", want, b)
	}

	var table Table
	if err = table.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}
	if table.String() != ResetOffTable.String() {
		t.Errorf("expected %s, got %s", ResetOffTable, table)
	}
}

func TestNewTable(t *testing.T) {
	for _, r := range []Record{
		Cmd(0x00),
		Cmd(DelayMarker),
		Cmd(0xE0, make([]byte, 256)...),
		{Kind: RecordKind(7)},
	} {
		if _, err := NewTable(r); err == nil {
			t.Errorf("expected %s to be rejected", r)
		}
	}

	params := []byte{0x48}
	table, err := NewTable(Cmd(0x36, params...), Delay(5), Delay(10))
	if err != nil {
		t.Fatal(err)
	}
	params[0] = 0xFF
	if v := table.Records()[0].Params[0]; v != 0x48 {
		t.Errorf("expected table to copy parameters, got %#02x", v)
	}
	if v := table.Delay(); v != 15*time.Millisecond {
		t.Errorf("expected delay 15ms, got %s", v)
	}
	if v := table.String(); v != "0x36[48] delay(5ms) delay(10ms)" {
		t.Errorf("unexpected string %q", v)
	}
}

func TestLoadTable(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/etc/ili9341/wake.bin", []byte{0x11, 0x00, DelayMarker, 120, 0x29, 0x00, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadTable(fs, "/etc/ili9341/wake.bin")
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 3 {
		t.Errorf("expected 3 records, got %d", table.Len())
	}
	if v := table.Delay(); v != 120*time.Millisecond {
		t.Errorf("expected delay 120ms, got %s", v)
	}

	if _, err = LoadTable(fs, "/missing"); err == nil {
		t.Error("expected error loading missing table")
	}

	_ = afero.WriteFile(fs, "/bad.bin", []byte{0x36, 0x04}, 0o644)
	if _, err = LoadTable(fs, "/bad.bin"); errors.Cause(err) != ErrTableTruncated {
		t.Errorf("expected %v, got %v", ErrTableTruncated, err)
	}
}
