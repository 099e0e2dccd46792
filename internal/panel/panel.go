package panel

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/clambin/vantage/internal/elevate"
	"github.com/clambin/vantage/internal/ideapad"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// ErrBusy is returned when a setting is requested while another one is still being written.
var ErrBusy = errors.New("another setting is being applied")

// Panel holds the in-memory mirror of the device's state and applies requested settings to the device.
// The mirror only changes after the privileged write of a setting succeeded.
type Panel struct {
	device    ideapad.Device
	writer    elevate.Writer
	observers []Observer
	writes    *prometheus.CounterVec

	lock    sync.RWMutex
	state   ideapad.State
	writing bool
	phases  map[ideapad.Kind]Phase
	last    map[ideapad.Kind]Phase
}

// Observer is called after each phase change of a setting.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) {
	f(e)
}

// Event describes a phase change. State is the mirror after the change. Err is set for Rejected.
type Event struct {
	Setting ideapad.Setting
	Phase   Phase
	State   ideapad.State
	Err     error
}

// New reads the device's current state and returns a Panel for it.
func New(device ideapad.Device, writer elevate.Writer, observers ...Observer) (*Panel, error) {
	state, err := device.ReadState()
	if err != nil {
		return nil, err
	}
	return NewWithState(state, device, writer, observers...), nil
}

// NewWithState returns a Panel that starts from a known state, without reading the device.
func NewWithState(state ideapad.State, device ideapad.Device, writer elevate.Writer, observers ...Observer) *Panel {
	return &Panel{
		device:    device,
		writer:    writer,
		observers: observers,
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vantage",
			Name:      "writes_total",
			Help:      "Number of privileged writes, by setting and result",
		}, []string{"setting", "result"}),
		state:  state,
		phases: make(map[ideapad.Kind]Phase),
		last:   make(map[ideapad.Kind]Phase),
	}
}

// State returns the current mirror of the device's state.
func (p *Panel) State() ideapad.State {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.state
}

// Phase returns whether a setting of the given kind is being written.
func (p *Panel) Phase(kind ideapad.Kind) Phase {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.phases[kind]
}

// LastOutcome returns Applied or Rejected for the last completed write of the given kind, or Idle if there was none.
func (p *Panel) LastOutcome(kind ideapad.Kind) Phase {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.last[kind]
}

// Busy reports whether a write is in flight. Front-ends disable their controls while it is.
func (p *Panel) Busy() bool {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.writing
}

// Apply writes the setting to the device. On success, the mirror is updated. On failure, the mirror is
// left untouched and the writer's error is returned. If another write is in flight, ErrBusy is returned.
func (p *Panel) Apply(ctx context.Context, setting ideapad.Setting) error {
	if err := p.begin(setting); err != nil {
		return err
	}

	logger := log.WithField("setting", setting.String())
	logger.Info("applying setting")

	path := p.device.Attribute(setting.Kind).Path()
	err := p.writer.Write(ctx, path, strconv.Itoa(int(setting.Code())))

	p.end(setting, err)
	if err != nil {
		logger.WithError(err).Error("unable to apply setting")
		return err
	}
	logger.Info("setting applied")
	return nil
}

// ApplyAsync runs Apply in the background. The returned channel receives Apply's result.
func (p *Panel) ApplyAsync(ctx context.Context, setting ideapad.Setting) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- p.Apply(ctx, setting)
	}()
	return ch
}

func (p *Panel) begin(setting ideapad.Setting) error {
	p.lock.Lock()
	if p.writing {
		p.lock.Unlock()
		log.WithField("setting", setting.String()).Warning("setting refused: write in progress")
		return ErrBusy
	}
	p.writing = true
	p.phases[setting.Kind] = Writing
	event := Event{Setting: setting, Phase: Writing, State: p.state}
	p.lock.Unlock()

	p.notify(event)
	return nil
}

func (p *Panel) end(setting ideapad.Setting, err error) {
	p.lock.Lock()
	outcome, result := Applied, "success"
	if err != nil {
		outcome, result = Rejected, "failure"
	} else {
		p.state = setting.ApplyTo(p.state)
	}
	p.writing = false
	p.phases[setting.Kind] = Idle
	p.last[setting.Kind] = outcome
	event := Event{Setting: setting, Phase: outcome, State: p.state, Err: err}
	p.lock.Unlock()

	p.writes.WithLabelValues(setting.Kind.String(), result).Inc()
	p.notify(event)
}

func (p *Panel) notify(event Event) {
	for _, o := range p.observers {
		o.Observe(event)
	}
}

// Describe implements the prometheus.Collector interface
func (p *Panel) Describe(ch chan<- *prometheus.Desc) {
	p.writes.Describe(ch)
}

// Collect implements the prometheus.Collector interface
func (p *Panel) Collect(ch chan<- prometheus.Metric) {
	p.writes.Collect(ch)
}
