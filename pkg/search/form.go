package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

const DateLayout = "2006-01-02"

type Field string

const (
	FieldLocation Field = "location"
	FieldCheckIn  Field = "checkIn"
	FieldCheckOut Field = "checkOut"
)

var (
	ErrLocationRequired = errors.New("Please enter a location")
	ErrInvalidDate      = errors.New("dates must use the YYYY-MM-DD format")
	ErrDateOrder        = errors.New("check-out must be after check-in")
	ErrUnknownField     = errors.New("unknown search field")
	ErrSubmitInProgress = errors.New("search already in progress")
)

// Query is the submitted search form.
type Query struct {
	Location string `json:"location"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// Handler receives a validated query.
type Handler func(ctx context.Context, q Query) error

// Form holds the landing page search state: a location and a stay window.
type Form struct {
	mu        sync.Mutex
	data      Query
	isLoading bool
}

// NewForm returns a form whose stay defaults to today through tomorrow.
func NewForm(now time.Time) *Form {
	return &Form{
		data: Query{
			CheckIn:  now.Format(DateLayout),
			CheckOut: now.AddDate(0, 0, 1).Format(DateLayout),
		},
	}
}

func (f *Form) Data() Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}

func (f *Form) IsLoading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isLoading
}

func (f *Form) Update(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case FieldLocation:
		f.data.Location = value
	case FieldCheckIn:
		f.data.CheckIn = value
	case FieldCheckOut:
		f.data.CheckOut = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// Reset clears every field, dates included.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = Query{}
}

func (f *Form) Validate() error {
	return f.Data().Validate()
}

// Submit validates the form and hands it to h, keeping IsLoading true for the
// duration of the call.
func (f *Form) Submit(ctx context.Context, h Handler) error {
	f.mu.Lock()
	if err := f.data.Validate(); err != nil {
		f.mu.Unlock()
		return err
	}
	if f.isLoading {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}
	f.isLoading = true
	q := f.data
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.isLoading = false
		f.mu.Unlock()
	}()

	if h == nil {
		return nil
	}
	return h(ctx, q)
}

// Validate checks the location and, when present, the stay dates.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Location) == "" {
		return ErrLocationRequired
	}

	if q.CheckIn == "" && q.CheckOut == "" {
		return nil
	}

	checkIn, checkOut, err := q.Dates()
	if err != nil {
		return err
	}
	if !checkOut.After(checkIn) {
		return ErrDateOrder
	}
	return nil
}

// Dates parses the check-in and check-out dates.
func (q Query) Dates() (time.Time, time.Time, error) {
	checkIn, err := time.Parse(DateLayout, q.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: checkIn %q", ErrInvalidDate, q.CheckIn)
	}
	checkOut, err := time.Parse(DateLayout, q.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: checkOut %q", ErrInvalidDate, q.CheckOut)
	}
	return checkIn, checkOut, nil
}
