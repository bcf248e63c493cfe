package ili9341

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DelayMarker is the command byte that marks a delay record in the wire
// format. The byte that follows is the delay in milliseconds.
const DelayMarker = 0x55

// Table errors.
var (
	ErrTableTruncated    = errors.New("ili9341: command table is truncated")
	ErrTableUnterminated = errors.New("ili9341: command table has no terminator")
)

// RecordKind tags a Record.
type RecordKind uint8

const (
	CommandRecord RecordKind = iota
	DelayRecord
)

// Record is one step of a command table: either a command with its
// parameters, or a delay.
type Record struct {
	Kind    RecordKind
	Command byte
	Params  []byte
	Millis  uint8
}

// Cmd is a command record.
func Cmd(command byte, params ...byte) Record {
	return Record{Kind: CommandRecord, Command: command, Params: params}
}

// Delay is a delay record.
func Delay(ms uint8) Record {
	return Record{Kind: DelayRecord, Millis: ms}
}

// Duration of a delay record.
func (r Record) Duration() time.Duration {
	if r.Kind != DelayRecord {
		return 0
	}
	return time.Duration(r.Millis) * time.Millisecond
}

func (r Record) String() string {
	if r.Kind == DelayRecord {
		return fmt.Sprintf("delay(%dms)", r.Millis)
	}
	if len(r.Params) == 0 {
		return fmt.Sprintf("%#02x", r.Command)
	}
	return fmt.Sprintf("%#02x[% x]", r.Command, r.Params)
}

// Table is an immutable, validated sequence of records.
type Table struct {
	records []Record
}

// NewTable validates records and copies them into a Table.
//
// Records that cannot be expressed in the wire format are rejected: command
// 0x00 (the terminator), command DelayMarker and more than 255 parameters.
func NewTable(records ...Record) (Table, error) {
	t := Table{records: make([]Record, 0, len(records))}
	for i, r := range records {
		switch r.Kind {
		case DelayRecord:
			t.records = append(t.records, Delay(r.Millis))
		case CommandRecord:
			if r.Command == 0x00 || r.Command == DelayMarker {
				return Table{}, errors.Errorf("ili9341: record %d: command %#02x is reserved", i, r.Command)
			}
			if len(r.Params) > 0xFF {
				return Table{}, errors.Errorf("ili9341: record %d: %d parameters, at most 255 allowed", i, len(r.Params))
			}
			t.records = append(t.records, Cmd(r.Command, append([]byte(nil), r.Params...)...))
		default:
			return Table{}, errors.Errorf("ili9341: record %d: unknown kind %d", i, r.Kind)
		}
	}
	return t, nil
}

// MustTable is like NewTable but panics on invalid records.
func MustTable(records ...Record) Table {
	t, err := NewTable(records...)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTable decodes the wire format: records of [command][length][params...],
// a DelayMarker command followed by one byte of milliseconds, terminated by a
// 0x00 command byte. Bytes after the terminator are ignored.
func ParseTable(b []byte) (Table, error) {
	var t Table
	for i := 0; ; {
		if i >= len(b) {
			return Table{}, ErrTableUnterminated
		}
		command := b[i]
		if command == 0x00 {
			return t, nil
		}
		if i+1 >= len(b) {
			return Table{}, errors.Wrapf(ErrTableTruncated, "record at offset %d", i)
		}
		if command == DelayMarker {
			t.records = append(t.records, Delay(b[i+1]))
			i += 2
			continue
		}
		n := int(b[i+1])
		if i+2+n > len(b) {
			return Table{}, errors.Wrapf(ErrTableTruncated, "command %#02x at offset %d wants %d parameters", command, i, n)
		}
		t.records = append(t.records, Cmd(command, append([]byte(nil), b[i+2:i+2+n]...)...))
		i += 2 + n
	}
}

// LoadTable reads a wire format table from a file.
func LoadTable(fs afero.Fs, name string) (Table, error) {
	b, err := afero.ReadFile(fs, name)
	if err != nil {
		return Table{}, errors.Wrap(err, "ili9341: load command table")
	}
	t, err := ParseTable(b)
	if err != nil {
		return Table{}, errors.Wrap(err, name)
	}
	return t, nil
}

// MarshalBinary encodes the table in the wire format, terminator included.
func (t Table) MarshalBinary() ([]byte, error) {
	var b []byte
	for _, r := range t.records {
		if r.Kind == DelayRecord {
			b = append(b, DelayMarker, r.Millis)
			continue
		}
		b = append(b, r.Command, byte(len(r.Params)))
		b = append(b, r.Params...)
	}
	return append(b, 0x00), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Table) UnmarshalBinary(b []byte) (err error) {
	*t, err = ParseTable(b)
	return
}

// Len is the number of records.
func (t Table) Len() int {
	return len(t.records)
}

// Records returns a copy of the records.
func (t Table) Records() []Record {
	return lo.Map(t.records, func(r Record, _ int) Record {
		r.Params = append([]byte(nil), r.Params...)
		return r
	})
}

// Delay is the sum of all delay records.
func (t Table) Delay() time.Duration {
	return lo.Reduce(t.records, func(sum time.Duration, r Record, _ int) time.Duration {
		return sum + r.Duration()
	}, 0)
}

func (t Table) String() string {
	return strings.Join(lo.Map(t.records, func(r Record, _ int) string {
		return r.String()
	}), " ")
}

// Built-in power up tables. The controller powers up with only reset, sleep
// out and display on; the rest selects RGB565 and the memory access order.
var (
	ResetOffTable = MustTable(
		Cmd(ili9341SWRESET),
		Delay(150),
		Cmd(ili9341DISPOFF),
		Cmd(ili9341PIXFMT, pixelFormat16),
	)
	WakeOnTable = MustTable(
		Cmd(ili9341SLPOUT),
		Delay(150),
		Cmd(ili9341DISPON),
		Cmd(ili9341INVOFF),
		Cmd(ili9341MADCTL, madctlColumnAddressOrder|madctlBGR),
		Cmd(ili9341IFMODE, 0x40), // RCM=2
	)
)

// RunSequence replays t: command records are written as a command byte
// followed by their parameters in data mode, delay records block for their
// duration and write nothing.
func (d *Driver) RunSequence(t Table) error {
	d.log.Debug("run sequence",
		zap.Int("records", t.Len()),
		zap.Duration("delay", t.Delay()))

	for _, r := range t.records {
		if r.Kind == DelayRecord {
			d.sleep(r.Duration())
			continue
		}
		if err := d.command(r.Command, r.Params...); err != nil {
			return errors.Wrapf(err, "ili9341: command %#02x", r.Command)
		}
	}
	return nil
}
