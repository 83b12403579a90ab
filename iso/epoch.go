package iso

import (
	"fmt"

	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/nano"
)

// Days between 0000-03-01 and 1970-01-01.
const civilEpochShift = 719468

// EpochDays returns the number of days from 1970-01-01 to d. Uses the
// days-from-civil algorithm over 400-year eras, so no floating point is
// involved and any year is supported.
func EpochDays(d Date) int64 {
	y := int64(d.Year)
	m := int64(d.Month)
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + int64(d.Day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - civilEpochShift
}

// DateFromEpochDays returns the date days after 1970-01-01. It is the
// inverse of [EpochDays].
func DateFromEpochDays(days int64) Date {
	z := days + civilEpochShift
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day := doy - (153*mp+2)/5 + 1
	month := mp + 3
	if month > 12 {
		month -= 12
	}
	if month <= 2 {
		y++
	}
	return Date{Year: int(y), Month: int(month), Day: int(day)}
}

// AddDays returns d moved by days.
func AddDays(d Date, days int64) Date {
	if days == 0 {
		return d
	}
	return DateFromEpochDays(EpochDays(d) + days)
}

// DiffDays returns the number of days from a to b.
func DiffDays(a, b Date) int64 {
	return EpochDays(b) - EpochDays(a)
}

// TimeToNano returns the nanoseconds since midnight represented by t.
func TimeToNano(t Time) int64 {
	return int64(t.Hour)*nano.NanoInHour +
		int64(t.Minute)*nano.NanoInMinute +
		int64(t.Second)*nano.NanoInSecond +
		int64(t.Millisecond)*nano.NanoInMilli +
		int64(t.Microsecond)*nano.NanoInMicro +
		int64(t.Nanosecond)
}

// TimeFromNano splits n nanoseconds since midnight into a Time and the
// number of whole days it overflows, using floor division so that negative
// values borrow from the previous day.
func TimeFromNano(n int64) (Time, int64) {
	days := floorDiv(n, nano.NanoInDay)
	return timeOfDay(n - days*nano.NanoInDay), days
}

// AddTimeNano adds an exact nanosecond amount to t, returning the new time
// of day and the number of days carried.
func AddTimeNano(t Time, n nano.Nano) (Time, int64) {
	days, rem := n.AddInt(TimeToNano(t)).DivModFloor(nano.NanoInDay)
	return timeOfDay(rem), days.Int64()
}

func timeOfDay(n int64) Time {
	return Time{
		Hour:        int(n / nano.NanoInHour),
		Minute:      int(n % nano.NanoInHour / nano.NanoInMinute),
		Second:      int(n % nano.NanoInMinute / nano.NanoInSecond),
		Millisecond: int(n % nano.NanoInSecond / nano.NanoInMilli),
		Microsecond: int(n % nano.NanoInMilli / nano.NanoInMicro),
		Nanosecond:  int(n % nano.NanoInMicro),
	}
}

// DateTimeToEpochNano returns the epoch nanoseconds of dt interpreted as
// UTC. The result is not bounds-checked.
func DateTimeToEpochNano(dt DateTime) nano.Nano {
	return nano.FromDayNano(EpochDays(dt.Date), TimeToNano(dt.Time))
}

// DateToEpochNano returns the epoch nanoseconds of midnight UTC on d.
func DateToEpochNano(d Date) nano.Nano {
	return nano.FromDayNano(EpochDays(d), 0)
}

// EpochNanoToDateTime returns the UTC date and time of epoch nanoseconds n.
// It is the inverse of [DateTimeToEpochNano].
func EpochNanoToDateTime(n nano.Nano) DateTime {
	days, rem := n.DivModFloor(nano.NanoInDay)
	return DateTime{
		Date: DateFromEpochDays(days.Int64()),
		Time: timeOfDay(rem),
	}
}

//nolint:gochecknoglobals
var (
	// The date-time window is one day wider than the instant window on
	// each side so that any instant can be viewed in any offset.
	dateTimeMin = nano.Min.AddInt(-nano.NanoInDay)
	dateTimeMax = nano.Max.AddInt(nano.NanoInDay)
)

// CheckDateTimeInBounds returns an [errs.ErrOutOfRange] error if dt lies
// outside the representable window.
func CheckDateTimeInBounds(dt DateTime) error {
	// Cheap guard before the exact check, which may involve huge years.
	if dt.Year < MinYear-1 || dt.Year > MaxYear+1 {
		return fmt.Errorf("%w: %v", errs.ErrOutOfRange, dt)
	}
	n := DateTimeToEpochNano(dt)
	if n.Compare(dateTimeMin) <= 0 || n.Compare(dateTimeMax) >= 0 {
		return fmt.Errorf("%w: %v", errs.ErrOutOfRange, dt)
	}
	return nil
}

// CheckDateInBounds returns an [errs.ErrOutOfRange] error if noon on d lies
// outside the representable window.
func CheckDateInBounds(d Date) error {
	return CheckDateTimeInBounds(DateTime{Date: d, Time: Time{Hour: 12}})
}
