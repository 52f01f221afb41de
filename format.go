package logdom

import "time"

// now is overridden by tests that need deterministic timestamps.
var now = func() time.Time { return time.Now().UTC() }

// timestamp renders the current time the way the teacher's
// formatHeader did: "yyyy/mm/dd hh:mm:ss", UTC, second resolution.
// The spec deliberately excludes sub-millisecond timestamps (§1
// Non-goals), so second resolution is sufficient here.
func timestamp() string {
	t := now()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	var b [19]byte
	putInt(b[0:4], year, 4)
	b[4] = '/'
	putInt(b[5:7], int(month), 2)
	b[7] = '/'
	putInt(b[8:10], day, 2)
	b[10] = ' '
	putInt(b[11:13], hour, 2)
	b[13] = ':'
	putInt(b[14:16], min, 2)
	b[16] = ':'
	putInt(b[17:19], sec, 2)
	return string(b[:])
}

// putInt writes i as zero-padded decimal into b, which must be
// exactly wid bytes. Adapted from the teacher's itoa in logger.go,
// which built up a scratch buffer the same way for the same reason:
// cheap formatting on the hot log-write path without fmt.Sprintf.
func putInt(b []byte, i, wid int) {
	for j := wid - 1; j >= 0; j-- {
		b[j] = byte(i%10) + '0'
		i /= 10
	}
}

// itoa is the teacher's cheap non-padded integer-to-decimal
// converter, used for the coalescing summary's repeat count (an
// unbounded, non-fixed-width integer unlike the timestamp fields
// above).
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		pos--
		buf[pos] = byte(i%10) + '0'
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
