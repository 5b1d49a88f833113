package app

import (
	"go.uber.org/zap"

	"github.com/Faultbox/squeeze/internal/config"
	"github.com/Faultbox/squeeze/internal/feedback"
	"github.com/Faultbox/squeeze/internal/logger"
)

// toggler is the part of the feedback emitter the preferences drive.
type toggler interface {
	Sound() bool
	SetSound(on bool)
	Vibration() bool
	SetVibration(on bool)
}

var _ toggler = (*feedback.Emitter)(nil)

// fileUpdater applies a change to the on-disk config.
type fileUpdater func(change func(*config.Config)) error

// preferences flips the sound and vibration toggles and writes the changed
// toggle back to the config file when persistence is on.
type preferences struct {
	cfg  *config.Config
	fb   toggler
	save fileUpdater
	log  *zap.Logger
}

func newPreferences(cfg *config.Config, fb toggler, save fileUpdater) *preferences {
	return &preferences{
		cfg:  cfg,
		fb:   fb,
		save: save,
		log:  logger.Named("prefs"),
	}
}

func (p *preferences) toggleSound() bool {
	on := !p.fb.Sound()
	p.fb.SetSound(on)
	p.cfg.Feedback.Sound = on
	p.log.Info("sound toggled", zap.Bool("on", on))
	p.persist(func(c *config.Config) { c.Feedback.Sound = on })
	return on
}

func (p *preferences) toggleVibration() bool {
	on := !p.fb.Vibration()
	p.fb.SetVibration(on)
	p.cfg.Feedback.Vibration = on
	p.log.Info("vibration toggled", zap.Bool("on", on))
	p.persist(func(c *config.Config) { c.Feedback.Vibration = on })
	return on
}

func (p *preferences) persist(change func(*config.Config)) {
	if !p.cfg.Feedback.Persist || p.save == nil {
		return
	}
	if err := p.save(change); err != nil {
		p.log.Warn("failed to save preferences", zap.String("path", p.cfg.Path()), zap.Error(err))
	}
}
