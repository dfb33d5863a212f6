package object

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Ident is the person and time recorded in author, committer and tagger
// headers: "Name <email> 1700000000 +0100".
type Ident struct {
	Name  string
	Email string
	When  time.Time
}

func (id Ident) String() string {
	_, offset := id.When.Zone()
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("%s <%s> %d %c%02d%02d",
		id.Name, id.Email, id.When.Unix(), sign, offset/3600, (offset%3600)/60)
}

// ParseIdent parses an author, committer or tagger header value.
func ParseIdent(s string) (Ident, error) {
	lt := strings.IndexByte(s, '<')
	gt := strings.LastIndexByte(s, '>')
	if lt < 0 || gt < lt {
		return Ident{}, fmt.Errorf("parse ident %q: missing <email>", s)
	}
	id := Ident{
		Name:  strings.TrimSpace(s[:lt]),
		Email: s[lt+1 : gt],
	}

	fields := strings.Fields(s[gt+1:])
	if len(fields) != 2 {
		return Ident{}, fmt.Errorf("parse ident %q: want timestamp and zone", s)
	}
	sec, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Ident{}, fmt.Errorf("parse ident %q: bad timestamp: %w", s, err)
	}
	loc, err := parseZone(fields[1])
	if err != nil {
		return Ident{}, fmt.Errorf("parse ident %q: %w", s, err)
	}
	id.When = time.Unix(sec, 0).In(loc)
	return id, nil
}

func parseZone(tz string) (*time.Location, error) {
	if len(tz) != 5 || (tz[0] != '+' && tz[0] != '-') {
		return nil, fmt.Errorf("bad zone %q", tz)
	}
	hh, err := strconv.Atoi(tz[1:3])
	if err != nil {
		return nil, fmt.Errorf("bad zone %q", tz)
	}
	mm, err := strconv.Atoi(tz[3:5])
	if err != nil {
		return nil, fmt.Errorf("bad zone %q", tz)
	}
	offset := hh*3600 + mm*60
	if tz[0] == '-' {
		offset = -offset
	}
	return time.FixedZone(tz, offset), nil
}
