// Package schedule runs per-tile periodic tasks inside a Bubble Tea program.
//
// Each task is a chain of tea.Tick commands. Start and Cancel bump the
// task's generation, so a tick that was already in flight when its task was
// cancelled or restarted is recognised as stale and dropped.
package schedule

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Key identifies one task: a tile and what the task is for.
type Key struct {
	Tile    string
	Purpose string
}

// TickMsg is delivered when a task fires.
type TickMsg struct {
	Key  Key
	Gen  uint64
	Time time.Time
}

type task struct {
	gen      uint64
	interval time.Duration
}

// Scheduler tracks live tasks. It is meant to be owned by a single Bubble
// Tea model and is not safe for concurrent use.
type Scheduler struct {
	tasks map[Key]task
	gen   uint64
}

func New() *Scheduler {
	return &Scheduler{tasks: make(map[Key]task)}
}

// Start (re)arms the task for key. Any earlier run for key is superseded.
func (s *Scheduler) Start(key Key, interval time.Duration) tea.Cmd {
	if interval <= 0 {
		s.Cancel(key)
		return nil
	}
	s.gen++
	t := task{gen: s.gen, interval: interval}
	s.tasks[key] = t
	return tick(key, t)
}

// Cancel stops the task for key. Ticks already scheduled are dropped when
// they arrive.
func (s *Scheduler) Cancel(key Key) {
	delete(s.tasks, key)
}

// CancelTile stops every task of a tile.
func (s *Scheduler) CancelTile(tileID string) {
	for key := range s.tasks {
		if key.Tile == tileID {
			delete(s.tasks, key)
		}
	}
}

// CancelAll stops every task.
func (s *Scheduler) CancelAll() {
	s.tasks = make(map[Key]task)
}

// Running reports whether key has a live task.
func (s *Scheduler) Running(key Key) bool {
	_, ok := s.tasks[key]
	return ok
}

// Len is the number of live tasks.
func (s *Scheduler) Len() int { return len(s.tasks) }

// Accept checks msg against the live task. For a current tick it returns
// true and the command for the next tick; for a stale tick it returns false
// and nil.
func (s *Scheduler) Accept(msg TickMsg) (tea.Cmd, bool) {
	t, ok := s.tasks[msg.Key]
	if !ok || t.gen != msg.Gen {
		return nil, false
	}
	return tick(msg.Key, t), true
}

// Sync makes the live task set match want: tasks missing from want are
// cancelled, new ones are started, and tasks whose interval changed are
// restarted. Unchanged tasks keep running untouched.
func (s *Scheduler) Sync(want map[Key]time.Duration) tea.Cmd {
	for key := range s.tasks {
		if d, ok := want[key]; !ok || d <= 0 {
			s.Cancel(key)
		}
	}
	var cmds []tea.Cmd
	for key, d := range want {
		if d <= 0 {
			continue
		}
		if t, ok := s.tasks[key]; ok && t.interval == d {
			continue
		}
		cmds = append(cmds, s.Start(key, d))
	}
	return tea.Batch(cmds...)
}

func tick(key Key, t task) tea.Cmd {
	return tea.Tick(t.interval, func(now time.Time) tea.Msg {
		return TickMsg{Key: key, Gen: t.gen, Time: now}
	})
}
