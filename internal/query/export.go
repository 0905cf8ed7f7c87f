package query

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/models"
)

// CSVHeader is the first row of every export.
var CSVHeader = []string{
	"ID", "Full Name", "Email", "Phone Number", "College Name",
	"Department", "Project Title", "Category", "Abstract", "Registered At",
}

// DateTimeLayout renders timestamps the way an en-US locale date/time
// string reads, e.g. "3/9/2026, 2:05:07 PM".
const DateTimeLayout = "1/2/2006, 3:04:05 PM"

// TimestampTime converts a registration timestamp (nanoseconds since the
// epoch) to a time at millisecond precision, in loc.
func TimestampTime(ns int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(ns / 1_000_000).In(loc)
}

// WriteCSV writes the header and one row per registration, in order.
func WriteCSV(w io.Writer, regs []models.Registration, loc *time.Location) error {
	bw := bufio.NewWriter(w)
	writeRow(bw, CSVHeader)
	for _, r := range regs {
		writeRow(bw, []string{
			strconv.FormatInt(r.ID, 10),
			r.FullName,
			r.Email,
			r.PhoneNumber,
			r.CollegeName,
			r.Department,
			r.ProjectTitle,
			r.Category,
			r.Abstract,
			TimestampTime(r.Timestamp, loc).Format(DateTimeLayout),
		})
	}
	return bw.Flush()
}

// ExportCSV is WriteCSV into a string.
func ExportCSV(regs []models.Registration, loc *time.Location) string {
	var sb strings.Builder
	_ = WriteCSV(&sb, regs, loc)
	return sb.String()
}

func writeRow(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteString(escapeField(f))
	}
	w.WriteByte('\n')
}

// escapeField quotes a value only when it holds a comma, quote or line
// break; embedded quotes are doubled.
func escapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
