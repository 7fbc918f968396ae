package hooks

import (
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"
	"github.com/sirupsen/logrus"

	"github.com/autobrr/rocketdeploy/pkg/config"
	"github.com/autobrr/rocketdeploy/pkg/deploy"
	"github.com/autobrr/rocketdeploy/pkg/logger"
)

type TaskFunc func(ctx context.Context, run *deploy.Run) error

type Task struct {
	Name        string
	Description string
	Fn          TaskFunc
}

// Registry holds named tasks.
type Registry struct {
	tasks map[string]*Task
	log   *logrus.Entry
}

func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[string]*Task),
		log:   logger.GetLogger("hooks"),
	}
}

// Task registers fn under name. Registering a name twice is an error.
func (r *Registry) Task(name string, description string, fn TaskFunc) error {
	if name == "" || fn == nil {
		return errors.New("task needs a name and a function")
	}
	if _, exists := r.tasks[name]; exists {
		return errors.Errorf("task already registered: %q", name)
	}

	r.tasks[name] = &Task{Name: name, Description: description, Fn: fn}
	return nil
}

func (r *Registry) Get(name string) (*Task, bool) {
	t, ok := r.tasks[name]
	return t, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Run(ctx context.Context, name string, run *deploy.Run) error {
	t, ok := r.Get(name)
	if !ok {
		return errors.Errorf("task not found: %q", name)
	}

	log := r.log.WithField("task", name)
	if run != nil {
		log = log.WithField("run", run.ID)
	}

	log.Debug("Running task")
	if err := t.Fn(ctx, run); err != nil {
		return errors.Wrapf(err, "task %s", name)
	}
	log.Trace("Task finished")
	return nil
}

// Lifecycle binds registered tasks to before/after points of named events.
type Lifecycle struct {
	registry *Registry

	bindings map[string][]string
	bound    map[string]*strset.Set
}

func NewLifecycle(registry *Registry) *Lifecycle {
	return &Lifecycle{
		registry: registry,
		bindings: make(map[string][]string),
		bound:    make(map[string]*strset.Set),
	}
}

func (l *Lifecycle) Before(event string, task string) error {
	return l.Bind(config.PhaseBefore, event, task)
}

func (l *Lifecycle) After(event string, task string) error {
	return l.Bind(config.PhaseAfter, event, task)
}

// Bind adds task to the phase of event. A task bound twice to the same point
// runs once.
func (l *Lifecycle) Bind(phase string, event string, task string) error {
	if phase != config.PhaseBefore && phase != config.PhaseAfter {
		return fmt.Errorf("unknown hook phase: %q", phase)
	}
	if _, ok := l.registry.Get(task); !ok {
		return errors.Errorf("cannot bind unknown task %q to %s %s", task, phase, event)
	}

	key := bindingKey(phase, event)
	set, ok := l.bound[key]
	if !ok {
		set = strset.New()
		l.bound[key] = set
	}

	if set.Has(task) {
		return nil
	}

	set.Add(task)
	l.bindings[key] = append(l.bindings[key], task)
	return nil
}

// BindConfig applies configured bindings. Events are bound in name order.
func (l *Lifecycle) BindConfig(cfg config.HooksConfig) error {
	for _, phase := range []string{config.PhaseBefore, config.PhaseAfter} {
		bindings, err := cfg.Bindings(phase)
		if err != nil {
			return err
		}

		events := make([]string, 0, len(bindings))
		for event := range bindings {
			events = append(events, event)
		}
		sort.Strings(events)

		for _, event := range events {
			for _, task := range bindings[event] {
				if err := l.Bind(phase, event, task); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Tasks returns the tasks bound to phase of event, in bind order.
func (l *Lifecycle) Tasks(phase string, event string) []string {
	return append([]string(nil), l.bindings[bindingKey(phase, event)]...)
}

// BoundTo returns the "phase event" points task is bound to, sorted.
func (l *Lifecycle) BoundTo(task string) []string {
	var points []string
	for key, set := range l.bound {
		if set.Has(task) {
			points = append(points, key)
		}
	}
	sort.Strings(points)
	return points
}

// Fire runs the tasks bound to phase of event one after another. The first
// failing task stops the run and its error is returned.
func (l *Lifecycle) Fire(ctx context.Context, phase string, event string, run *deploy.Run) error {
	tasks := l.Tasks(phase, event)
	if len(tasks) == 0 {
		l.registry.log.Debugf("No tasks bound to %s %s", phase, event)
		return nil
	}

	l.registry.log.Infof("Firing %s %s (%d task(s))", phase, event, len(tasks))
	for _, task := range tasks {
		if err := l.registry.Run(ctx, task, run); err != nil {
			return err
		}
	}
	return nil
}

func bindingKey(phase string, event string) string {
	return phase + " " + event
}
