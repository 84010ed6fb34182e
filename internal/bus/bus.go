// Package bus assembles the pub/sub primitives in internal/domain/pubsub
// into a complete MessageBus: channel registry, name validation, the
// dedicated dispatcher lifecycle, and the internal log channel used to
// report asynchronous subscriber panics.
package bus

import (
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	domainconfig "github.com/kodflow/msgbus/internal/domain/config"
	domainlogging "github.com/kodflow/msgbus/internal/domain/logging"
	"github.com/kodflow/msgbus/internal/domain/pubsub"
	"github.com/kodflow/msgbus/internal/infrastructure/concurrency"
	"github.com/kodflow/msgbus/internal/infrastructure/dispatch"
	infralogging "github.com/kodflow/msgbus/internal/infrastructure/logging"
)

// internalLogChannelName is the top-level channel the bus logs its own
// operational events to, such as a recovered async subscriber panic.
const internalLogChannelName = "_internal_log"

// MessageBus owns the channel namespace, the async dispatcher, and the
// bus-wide lifecycle (Start/Stop/TurnOnDedicatedThreadMode). It is safe for
// concurrent use.
type MessageBus struct {
	separator    string
	maxQueueSize int

	mu       sync.RWMutex
	channels map[string]*pubsub.Channel
	root     *pubsub.Channel

	proxy               *dispatcherProxy
	dispatcher          *dispatch.Dispatcher
	dedicatedThreadMode bool

	running   int32 // atomic bool
	startTime time.Time

	internalLog  *domainlogging.LogChannel
	writerLogger *infralogging.WriterLogger
}

// New builds a MessageBus from cfg, applying any opts on top. The returned
// bus is constructed but not started; call Start to begin accepting
// asynchronous delivery in dedicated-thread mode.
func New(cfg domainconfig.BusConfig, opts ...Option) (*MessageBus, error) {
	domainconfig.ApplyDefaults(&cfg)
	if err := domainconfig.Validate(&cfg); err != nil {
		return nil, err
	}

	o := buildOptions{
		separator:           cfg.NameSeparator,
		maxQueueSize:        cfg.MaxQueueSize,
		dedicatedThreadMode: cfg.DedicatedThreadMode,
	}
	for _, opt := range opts {
		opt(&o)
	}

	b := &MessageBus{
		separator:    o.separator,
		maxQueueSize: o.maxQueueSize,
		channels:     make(map[string]*pubsub.Channel),
	}

	b.proxy = newDispatcherProxy(dispatch.NewInlineDispatcher(&logReporter{bus: b}))
	b.root = pubsub.NewRootChannel(pubsub.RootChannelName, b.separator, b.proxy, concurrency.CurrentGoroutineID, b.IsRunning)
	b.channels[pubsub.RootChannelName] = b.root

	internalChannel := pubsub.NewChildChannel(internalLogChannelName, b.root, b.proxy, concurrency.CurrentGoroutineID, b.IsRunning)
	b.channels[internalLogChannelName] = internalChannel
	b.internalLog = domainlogging.NewLogChannel(internalChannel, concurrency.CurrentGoroutineID)

	writers := o.writers
	if writers == nil {
		built, err := defaultWriters(cfg.Logging)
		if err != nil {
			return nil, err
		}
		writers = built
	}

	minLevel, err := domainlogging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		minLevel = domainlogging.LevelInfo
	}
	filtered := make([]domainlogging.Writer, len(writers))
	for i, w := range writers {
		filtered[i] = infralogging.WithLevelFilter(w, minLevel)
	}
	b.writerLogger = infralogging.NewWriterLogger(b.internalLog, filtered...)

	if o.dedicatedThreadMode {
		b.dispatcher = dispatch.NewDispatcher(o.maxQueueSize, &logReporter{bus: b})
		b.proxy.store(b.dispatcher)
		b.dedicatedThreadMode = true
	}

	return b, nil
}

// defaultWriters builds the writer set BusConfig.Logging describes: a
// console writer when enabled (or when no file output is configured, so a
// bus is never silently unobservable), and a rotating file writer when a
// base directory is set.
func defaultWriters(lc domainconfig.LoggingConfig) ([]domainlogging.Writer, error) {
	var writers []domainlogging.Writer

	if lc.BaseDir != "" {
		fw, err := infralogging.NewFileWriter(filepath.Join(lc.BaseDir, "bus.log"), lc.Rotation)
		if err != nil {
			return nil, err
		}
		writers = append(writers, fw)
	}

	if lc.Console || len(writers) == 0 {
		writers = append(writers, infralogging.NewConsoleWriter())
	}

	return writers, nil
}

// IsRunning reports whether the bus has been started and not yet stopped.
func (b *MessageBus) IsRunning() bool {
	return atomic.LoadInt32(&b.running) == 1
}

// Start transitions the bus to running, launching the dispatcher worker if
// the bus is in dedicated-thread mode, and registers it in the process-wide
// running set. A second call is a no-op.
func (b *MessageBus) Start() error {
	if !atomic.CompareAndSwapInt32(&b.running, 0, 1) {
		return nil
	}
	b.startTime = time.Now()

	b.mu.Lock()
	d := b.dispatcher
	if b.dedicatedThreadMode && d == nil {
		// A previous Stop consumed the worker; a restarted bus needs a
		// fresh one.
		d = dispatch.NewDispatcher(b.maxQueueSize, &logReporter{bus: b})
		b.dispatcher = d
		b.proxy.store(d)
	}
	b.mu.Unlock()
	if d != nil {
		d.Start()
	}

	registerRunningBus(b)
	return nil
}

// Stop transitions the bus to stopped, joins the dispatcher worker if one is
// running, and removes the bus from the process-wide running set. Safe to
// call multiple times and from within an async subscriber callback.
func (b *MessageBus) Stop() error {
	if !atomic.CompareAndSwapInt32(&b.running, 1, 0) {
		return nil
	}

	b.mu.Lock()
	d := b.dispatcher
	b.dispatcher = nil
	b.mu.Unlock()
	if d != nil {
		d.Stop()
	}

	unregisterRunningBus(b)
	return nil
}

// StartTime returns when the bus last transitioned to running. Its value is
// meaningless before the first Start.
func (b *MessageBus) StartTime() time.Time {
	return b.startTime
}

// TurnOnDedicatedThreadMode switches a non-dedicated bus into dedicated
// mode, spawning the worker immediately if the bus is already running. It
// is a no-op if the bus is already in dedicated-thread mode.
func (b *MessageBus) TurnOnDedicatedThreadMode() {
	b.mu.Lock()
	if b.dedicatedThreadMode {
		b.mu.Unlock()
		return
	}
	d := dispatch.NewDispatcher(b.maxQueueSize, &logReporter{bus: b})
	b.dispatcher = d
	b.dedicatedThreadMode = true
	b.mu.Unlock()

	b.proxy.store(d)
	if b.IsRunning() {
		d.Start()
	}
}

// NameSeparator returns the character partitioning hierarchical channel
// names on this bus.
func (b *MessageBus) NameSeparator() string {
	return b.separator
}

// IsValidChannelName reports whether name conforms to this bus's naming
// grammar.
func (b *MessageBus) IsValidChannelName(name string) bool {
	return pubsub.IsValidChannelName(name, b.separator)
}

// RootChannel returns the distinguished root channel.
func (b *MessageBus) RootChannel() *pubsub.Channel {
	return b.root
}

// CreateNewChannel registers a new channel under name, creating any missing
// ancestor channels silently. It fails with ErrInvalidChannelName if name
// does not conform to the naming grammar, or ErrChannelAlreadyExists if a
// channel with the exact name is already registered.
func (b *MessageBus) CreateNewChannel(name string) (*pubsub.Channel, error) {
	if !b.IsValidChannelName(name) {
		return nil, pubsub.WrapError("create_channel", name, pubsub.ErrInvalidChannelName)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.channels[name]; exists {
		return nil, pubsub.WrapError("create_channel", name, pubsub.ErrChannelAlreadyExists)
	}
	return b.ensureChannelLocked(name), nil
}

// ensureChannelLocked returns the channel named name, creating it and any
// missing ancestors first. Callers must hold b.mu for writing.
func (b *MessageBus) ensureChannelLocked(name string) *pubsub.Channel {
	if ch, ok := b.channels[name]; ok {
		return ch
	}

	parent := b.root
	if parentName, ok := pubsub.ParentName(name, b.separator); ok {
		parent = b.ensureChannelLocked(parentName)
	}

	ch := pubsub.NewChildChannel(name, parent, b.proxy, concurrency.CurrentGoroutineID, b.IsRunning)
	b.channels[name] = ch
	return ch
}

// GetChannel returns the channel registered under name.
func (b *MessageBus) GetChannel(name string) (*pubsub.Channel, error) {
	if !b.IsValidChannelName(name) {
		return nil, pubsub.WrapError("get_channel", name, pubsub.ErrInvalidChannelName)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.channels[name]
	if !ok {
		return nil, pubsub.WrapError("get_channel", name, pubsub.ErrUnknownChannel)
	}
	return ch, nil
}

// Channels returns a snapshot of every registered channel, keyed by name.
func (b *MessageBus) Channels() map[string]*pubsub.Channel {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]*pubsub.Channel, len(b.channels))
	for name, ch := range b.channels {
		out[name] = ch
	}
	return out
}

// GetOpenChannelNames returns every registered channel name, sorted.
func (b *MessageBus) GetOpenChannelNames() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.channels))
	for name := range b.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Subscribe resolves channelName and delegates to its Subscribe method.
func (b *MessageBus) Subscribe(channelName string, subscriber pubsub.Subscriber, includeSubchannels, async bool, threadID uint64) (*pubsub.Subscription, error) {
	ch, err := b.GetChannel(channelName)
	if err != nil {
		return nil, err
	}
	return ch.Subscribe(subscriber, includeSubchannels, async, threadID), nil
}

// Logger returns a LogChannel bound to channelName, creating the channel
// first if it does not already exist.
func (b *MessageBus) Logger(channelName string) (*domainlogging.LogChannel, error) {
	ch, err := b.GetChannel(channelName)
	if err != nil {
		if !errors.Is(err, pubsub.ErrUnknownChannel) {
			return nil, err
		}
		ch, err = b.CreateNewChannel(channelName)
		if err != nil {
			return nil, err
		}
	}
	return domainlogging.NewLogChannel(ch, concurrency.CurrentGoroutineID), nil
}

// InternalLogger returns the LogChannel the bus reports its own operational
// events on, such as recovered async subscriber panics.
func (b *MessageBus) InternalLogger() *domainlogging.LogChannel {
	return b.internalLog
}

// Close stops the bus if running and releases the internal log channel's
// writers.
func (b *MessageBus) Close() error {
	err := b.Stop()
	if closeErr := b.writerLogger.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
