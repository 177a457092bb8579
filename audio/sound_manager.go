package audio

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/core"
	"github.com/lixenwraith/system-defender/engine"
	"github.com/lixenwraith/system-defender/status"
)

// eventSounds maps gameplay events to sounds; unmapped events are silent
var eventSounds = map[engine.EventType]SoundType{
	engine.EventKeyAccepted:     SoundTyping,
	engine.EventKeyMissed:       SoundMiss,
	engine.EventEnemyKilled:     SoundKill,
	engine.EventPlayerDamaged:   SoundDamage,
	engine.EventLevelUp:         SoundLevelUp,
	engine.EventBossSpawned:     SoundBossSpawn,
	engine.EventBossKilled:      SoundBossKill,
	engine.EventArtifactOffered: SoundArtifact,
}

// SoundForEvent returns the sound played for t
func SoundForEvent(t engine.EventType) (SoundType, bool) {
	s, ok := eventSounds[t]
	return s, ok
}

// speakerSink plays through the system speaker mixer
type speakerSink struct{}

func (speakerSink) Play(s beep.Streamer) { speaker.Play(s) }

// SoundManager turns simulation events into tones
// HandleEvent never blocks: requests beyond the queue are dropped
type SoundManager struct {
	cfg    *AudioConfig
	sink   Sink
	rng    *rand.Rand
	logger zerolog.Logger

	queue chan SoundType

	mu         sync.Mutex
	started    bool
	ownSpeaker bool
	stopCh     chan struct{}
	wg         sync.WaitGroup

	lastPlayed [soundTypeCount]time.Time

	statPlayed  *atomic.Int64
	statEnabled *atomic.Bool
}

// NewSoundManager creates a manager; a nil sink plays through the speaker after Start
func NewSoundManager(cfg *AudioConfig, sink Sink, stats *status.Registry, logger zerolog.Logger) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if stats == nil {
		stats = status.NewRegistry()
	}
	stats.Floats.Get(status.KeyMasterVolume).Set(cfg.MasterVolume)
	return &SoundManager{
		cfg:         cfg,
		sink:        sink,
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:      logger,
		queue:       make(chan SoundType, 32),
		statPlayed:  stats.Ints.Get(status.KeySoundsPlayed),
		statEnabled: stats.Bools.Get(status.KeyAudioEnabled),
	}
}

// Name implements service.Service
func (sm *SoundManager) Name() string {
	return "audio"
}

// Start initializes the speaker when needed and launches the playback worker
// A disabled config starts nothing; a speaker failure is returned and audio stays off
func (sm *SoundManager) Start() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.started || !sm.cfg.Enabled {
		return nil
	}

	if sm.sink == nil {
		rate := beep.SampleRate(sm.cfg.SampleRate)
		if err := speaker.Init(rate, rate.N(constants.AudioBufferDuration)); err != nil {
			return err
		}
		sm.sink = speakerSink{}
		sm.ownSpeaker = true
	}

	sm.stopCh = make(chan struct{})
	sm.started = true
	sm.statEnabled.Store(true)

	sm.wg.Add(1)
	core.Go(sm.worker)
	sm.logger.Info().Int("sample_rate", sm.cfg.SampleRate).Float64("volume", sm.cfg.MasterVolume).Msg("audio started")
	return nil
}

// Stop halts playback; safe to call repeatedly
func (sm *SoundManager) Stop() error {
	sm.mu.Lock()
	if !sm.started {
		sm.mu.Unlock()
		return nil
	}
	sm.started = false
	close(sm.stopCh)
	sm.mu.Unlock()

	sm.wg.Wait()
	sm.statEnabled.Store(false)

	if sm.ownSpeaker {
		speaker.Clear()
		speaker.Close()
		sm.sink = nil
		sm.ownSpeaker = false
	}
	return nil
}

// IsRunning reports whether Start succeeded and Stop has not been called
func (sm *SoundManager) IsRunning() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.started
}

// HandleEvent implements engine.EventListener
func (sm *SoundManager) HandleEvent(ev engine.Event) {
	if s, ok := eventSounds[ev.Type]; ok {
		sm.Play(s)
	}
}

// Play queues s; silent when stopped or when the queue is full
func (sm *SoundManager) Play(s SoundType) {
	if s < 0 || s >= soundTypeCount {
		return
	}
	select {
	case sm.queue <- s:
	default:
	}
}

func (sm *SoundManager) worker() {
	defer sm.wg.Done()
	for {
		select {
		case <-sm.stopCh:
			return
		case s := <-sm.queue:
			sm.play(s)
		}
	}
}

// play renders s and hands it to the sink unless it repeats within MinInterval
func (sm *SoundManager) play(s SoundType) {
	now := time.Now()
	if sm.cfg.MinInterval > 0 && now.Sub(sm.lastPlayed[s]) < sm.cfg.MinInterval {
		return
	}
	streamer := GetSoundEffect(s, sm.cfg, sm.rng)
	if streamer == nil {
		return
	}
	sm.lastPlayed[s] = now
	sm.sink.Play(streamer)
	sm.statPlayed.Add(1)
}
