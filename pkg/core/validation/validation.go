package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
)

const dateLayout = "2006-01-02"

// MaxStayNights is the longest single stay the form accepts.
const MaxStayNights = 30

// Pax bounds for a single entry.
const (
	MinPax = 1
	MaxPax = 50
)

// Errors maps field names to user-facing messages. An empty map means the
// form is submittable.
type Errors map[string]string

// OK reports whether no field failed.
func (e Errors) OK() bool {
	return len(e) == 0
}

// Merge copies messages from other, prefixing keys for row-scoped fields.
func (e Errors) Merge(prefix string, other Errors) {
	for field, msg := range other {
		if prefix != "" {
			field = prefix + "." + field
		}
		e[field] = msg
	}
}

// PrimaryTraveler checks the "Last/First" convention: exactly one slash with
// non-empty text on both sides.
func PrimaryTraveler(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "Primary traveler is required"
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return "Primary traveler must be in Last/First format"
	}
	if strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "Primary traveler must be in Last/First format"
	}
	return ""
}

// ParsePax parses the raw pax input and enforces the [1, 50] range. The
// returned message is empty when the value is acceptable.
func ParsePax(raw string) (int, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, "Number of passengers is required"
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, "Number of passengers must be a whole number"
	}
	if n < MinPax || n > MaxPax {
		return n, fmt.Sprintf("Number of passengers must be between %d and %d", MinPax, MaxPax)
	}
	return n, ""
}

// StayDates checks a check-in/check-out pair: both parse, in before out,
// not the same day, and no longer than MaxStayNights nights.
func StayDates(dateIn, dateOut string) string {
	in, err := time.Parse(dateLayout, dateIn)
	if err != nil {
		return "Check-in date is invalid"
	}
	out, err := time.Parse(dateLayout, dateOut)
	if err != nil {
		return "Check-out date is invalid"
	}
	if in.After(out) {
		return "Check-in date must be before check-out date"
	}
	if in.Equal(out) {
		return "Check-in and check-out dates cannot be the same"
	}
	if nights(in, out) > MaxStayNights {
		return fmt.Sprintf("Stay cannot be longer than %d nights", MaxStayNights)
	}
	return ""
}

// BedNights derives nights × passengers. Unparseable or negative spans count
// as zero rather than propagating an error, matching how the listing views
// total the column.
func BedNights(dateIn, dateOut string, numPax int) int {
	in, errIn := time.Parse(dateLayout, dateIn)
	out, errOut := time.Parse(dateLayout, dateOut)
	if errIn != nil || errOut != nil {
		return 0
	}
	n := nights(in, out)
	if n < 0 {
		return 0
	}
	return n * numPax
}

func nights(in, out time.Time) int {
	return int(out.Sub(in).Hours() / 24)
}

// StayRange is the date span of one entry for overlap checking.
type StayRange struct {
	DateIn  string
	DateOut string
}

// DateOverlaps reports one message per overlapping pair of half-open
// [date_in, date_out) ranges, indexed 1-based by position. Unparseable
// ranges are skipped.
func DateOverlaps(ranges []StayRange) []string {
	type parsed struct {
		in, out time.Time
		ok      bool
	}
	ps := make([]parsed, len(ranges))
	for i, r := range ranges {
		in, errIn := time.Parse(dateLayout, r.DateIn)
		out, errOut := time.Parse(dateLayout, r.DateOut)
		ps[i] = parsed{in: in, out: out, ok: errIn == nil && errOut == nil}
	}

	var messages []string
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if !ps[i].ok || !ps[j].ok {
				continue
			}
			if ps[i].in.Before(ps[j].out) && ps[j].in.Before(ps[i].out) {
				messages = append(messages, fmt.Sprintf("Entries %d and %d have overlapping dates", i+1, j+1))
			}
		}
	}
	return messages
}

// PropertyRef checks that the property side of a row is submittable.
func PropertyRef(ref model.PropertyRef) string {
	if !ref.IsSet() {
		return "A property is required"
	}
	if !ref.Complete() {
		if ref.Draft != nil {
			if strings.TrimSpace(ref.Draft.Name) == "" {
				return "New property name is required"
			}
			return "New property needs a country, or a Ship/Rail core destination"
		}
		return "A property is required"
	}
	return ""
}

// ChannelRef checks that the booking-channel side of a row is submittable.
func ChannelRef(ref model.ChannelRef) string {
	if !ref.Complete() {
		return "A booking channel is required"
	}
	return ""
}
