package widget

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrItemNotFound is returned when a list operation names a missing item.
var ErrItemNotFound = errors.New("widget: item not found")

// ErrEmpty is returned when required text is blank.
var ErrEmpty = errors.New("widget: text required")

// TodoItem is one task in a Todo list.
type TodoItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Todo is an ordered task list.
type Todo struct {
	Items         []TodoItem `json:"items"`
	HideCompleted bool       `json:"hideCompleted,omitempty"`
}

func (Todo) Kind() Kind { return KindTodo }

func (t Todo) Validate() error {
	return uniqueIDs(len(t.Items), func(i int) string { return t.Items[i].ID })
}

func (t Todo) normalize() Todo {
	if t.Items == nil {
		t.Items = []TodoItem{}
	}
	return t
}

// Add appends a trimmed, non-empty task.
func (t Todo) Add(id, text string) (Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return t, ErrEmpty
	}
	items := append(append([]TodoItem{}, t.Items...), TodoItem{ID: id, Text: text})
	t.Items = items
	return t, nil
}

// Toggle flips completion of the item with id.
func (t Todo) Toggle(id string) (Todo, error) {
	idx := indexOf(len(t.Items), func(i int) string { return t.Items[i].ID }, id)
	if idx < 0 {
		return t, ErrItemNotFound
	}
	items := append([]TodoItem{}, t.Items...)
	items[idx].Completed = !items[idx].Completed
	t.Items = items
	return t, nil
}

// Remove deletes the item with id.
func (t Todo) Remove(id string) (Todo, error) {
	idx := indexOf(len(t.Items), func(i int) string { return t.Items[i].ID }, id)
	if idx < 0 {
		return t, ErrItemNotFound
	}
	items := make([]TodoItem, 0, len(t.Items)-1)
	items = append(items, t.Items[:idx]...)
	t.Items = append(items, t.Items[idx+1:]...)
	return t, nil
}

// ToggleHideCompleted flips whether completed items are listed.
func (t Todo) ToggleHideCompleted() Todo {
	t.HideCompleted = !t.HideCompleted
	return t
}

// Visible lists the items that are shown.
func (t Todo) Visible() []TodoItem {
	if !t.HideCompleted {
		return t.Items
	}
	out := make([]TodoItem, 0, len(t.Items))
	for _, item := range t.Items {
		if !item.Completed {
			out = append(out, item)
		}
	}
	return out
}

// FontSize is the note text size.
type FontSize string

// FontFamily is the note typeface.
type FontFamily string

const (
	FontSizeNormal FontSize = "normal"
	FontSizeLarge  FontSize = "large"

	FontFamilySans FontFamily = "sans"
	FontFamilyMono FontFamily = "mono"
)

// Note is free text.
type Note struct {
	Text       string     `json:"text"`
	FontSize   FontSize   `json:"fontSize,omitempty"`
	FontFamily FontFamily `json:"fontFamily,omitempty"`
}

func (Note) Kind() Kind { return KindNote }

func (n Note) Validate() error {
	switch n.FontSize {
	case FontSizeNormal, FontSizeLarge:
	default:
		return fmt.Errorf("widget: note font size %q", n.FontSize)
	}
	switch n.FontFamily {
	case FontFamilySans, FontFamilyMono:
	default:
		return fmt.Errorf("widget: note font family %q", n.FontFamily)
	}
	return nil
}

func (n Note) normalize() Note {
	if n.FontSize == "" {
		n.FontSize = FontSizeNormal
	}
	if n.FontFamily == "" {
		n.FontFamily = FontFamilySans
	}
	return n
}

// ToggleFontSize flips normal and large.
func (n Note) ToggleFontSize() Note {
	if n.FontSize == FontSizeLarge {
		n.FontSize = FontSizeNormal
	} else {
		n.FontSize = FontSizeLarge
	}
	return n
}

// ToggleFontFamily flips sans and mono.
func (n Note) ToggleFontFamily() Note {
	if n.FontFamily == FontFamilyMono {
		n.FontFamily = FontFamilySans
	} else {
		n.FontFamily = FontFamilyMono
	}
	return n
}

// Counter is a plain integer.
type Counter struct {
	Count int `json:"count"`
}

func (Counter) Kind() Kind      { return KindCounter }
func (Counter) Validate() error { return nil }

func (c Counter) Increment() Counter { c.Count++; return c }
func (c Counter) Decrement() Counter { c.Count--; return c }
func (c Counter) Reset() Counter     { return Counter{} }

// Image shows a picture by URL.
type Image struct {
	URL string `json:"url"`
}

func (Image) Kind() Kind      { return KindImage }
func (Image) Validate() error { return nil }

// NeedsInput reports whether the widget should show its URL input instead
// of the picture: the URL is empty or cannot be loaded.
func (i Image) NeedsInput() bool {
	raw := strings.TrimSpace(i.URL)
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return true
	}
	switch u.Scheme {
	case "http", "https":
		return u.Host == ""
	case "data", "file":
		return false
	default:
		return true
	}
}

// LinkItem is one bookmark.
type LinkItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Links is an ordered list of bookmarks.
type Links struct {
	Items []LinkItem `json:"items"`
}

func (Links) Kind() Kind { return KindLinks }

func (l Links) Validate() error {
	return uniqueIDs(len(l.Items), func(i int) string { return l.Items[i].ID })
}

func (l Links) normalize() Links {
	if l.Items == nil {
		l.Items = []LinkItem{}
	}
	return l
}

var schemePattern = regexp.MustCompile(`(?i)^https?://`)

// NormalizeURL prefixes https:// when no http(s) scheme is present.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if schemePattern.MatchString(raw) {
		return raw
	}
	return "https://" + raw
}

// Add appends a bookmark. Label and URL are both required.
func (l Links) Add(id, label, rawURL string) (Links, error) {
	label = strings.TrimSpace(label)
	rawURL = strings.TrimSpace(rawURL)
	if label == "" || rawURL == "" {
		return l, ErrEmpty
	}
	l.Items = append(append([]LinkItem{}, l.Items...), LinkItem{ID: id, Label: label, URL: NormalizeURL(rawURL)})
	return l, nil
}

// Remove deletes the bookmark with id.
func (l Links) Remove(id string) (Links, error) {
	idx := indexOf(len(l.Items), func(i int) string { return l.Items[i].ID }, id)
	if idx < 0 {
		return l, ErrItemNotFound
	}
	items := make([]LinkItem, 0, len(l.Items)-1)
	items = append(items, l.Items[:idx]...)
	l.Items = append(items, l.Items[idx+1:]...)
	return l, nil
}

// DaysPerWeek is the fixed habit history length, Monday first.
const DaysPerWeek = 7

// Weekdays labels history indexes.
var Weekdays = [DaysPerWeek]string{"M", "T", "W", "T", "F", "S", "S"}

// HabitItem tracks one habit across a week.
type HabitItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	History []bool `json:"history"`
}

// Habit is a list of weekly habits.
type Habit struct {
	Habits []HabitItem `json:"habits"`
}

func (Habit) Kind() Kind { return KindHabit }

func (h Habit) Validate() error {
	for _, item := range h.Habits {
		if len(item.History) != DaysPerWeek {
			return fmt.Errorf("widget: habit %q history has %d days", item.ID, len(item.History))
		}
	}
	return uniqueIDs(len(h.Habits), func(i int) string { return h.Habits[i].ID })
}

func (h Habit) normalize() Habit {
	if h.Habits == nil {
		h.Habits = []HabitItem{}
	}
	for i := range h.Habits {
		hist := make([]bool, DaysPerWeek)
		copy(hist, h.Habits[i].History)
		h.Habits[i].History = hist
	}
	return h
}

// Add appends a habit with an empty week.
func (h Habit) Add(id, text string) (Habit, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return h, ErrEmpty
	}
	h.Habits = append(append([]HabitItem{}, h.Habits...), HabitItem{
		ID:      id,
		Text:    text,
		History: make([]bool, DaysPerWeek),
	})
	return h, nil
}

// Remove deletes the habit with id.
func (h Habit) Remove(id string) (Habit, error) {
	idx := indexOf(len(h.Habits), func(i int) string { return h.Habits[i].ID }, id)
	if idx < 0 {
		return h, ErrItemNotFound
	}
	items := make([]HabitItem, 0, len(h.Habits)-1)
	items = append(items, h.Habits[:idx]...)
	h.Habits = append(items, h.Habits[idx+1:]...)
	return h, nil
}

// ToggleDay flips one weekday (0=Mon .. 6=Sun) of the habit with id.
func (h Habit) ToggleDay(id string, day int) (Habit, error) {
	if day < 0 || day >= DaysPerWeek {
		return h, fmt.Errorf("widget: habit day %d out of range", day)
	}
	idx := indexOf(len(h.Habits), func(i int) string { return h.Habits[i].ID }, id)
	if idx < 0 {
		return h, ErrItemNotFound
	}
	habits := append([]HabitItem{}, h.Habits...)
	hist := append([]bool{}, habits[idx].History...)
	hist[day] = !hist[day]
	habits[idx].History = hist
	h.Habits = habits
	return h, nil
}

// Quote is a quotation with attribution.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

func (Quote) Kind() Kind      { return KindQuote }
func (Quote) Validate() error { return nil }

// Spacer holds no content; it only occupies grid space.
type Spacer struct{}

func (Spacer) Kind() Kind      { return KindSpacer }
func (Spacer) Validate() error { return nil }

func indexOf(n int, id func(int) string, want string) int {
	for i := 0; i < n; i++ {
		if id(i) == want {
			return i
		}
	}
	return -1
}

func uniqueIDs(n int, id func(int) string) error {
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		key := id(i)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("widget: duplicate item id %q", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}
