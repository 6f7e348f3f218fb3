// Package player delivers the audible signal for a prayer event. The
// scheduling core only decides when a signal fires; producing sound is
// delegated here, behind the Player interface.
package player

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Player emits the audible signal for the given event key.
type Player interface {
	Play(key string) error
}

// CommandPlayer shells out to an external playback command, e.g.
// "aplay" with a wav file argument.
type CommandPlayer struct {
	command   string
	soundFile string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewCommandPlayer creates a player that runs the given command with the
// sound file as its final argument. The command string may carry extra
// arguments ("ffplay -nodisp -autoexit").
func NewCommandPlayer(command, soundFile string, timeout time.Duration, logger *zap.Logger) *CommandPlayer {
	return &CommandPlayer{
		command:   command,
		soundFile: soundFile,
		timeout:   timeout,
		logger:    logger,
	}
}

// Play runs the playback command, bounded by the configured timeout so a
// hung player cannot pile up processes across occurrences.
func (p *CommandPlayer) Play(key string) error {
	parts := strings.Fields(p.command)
	if len(parts) == 0 {
		return fmt.Errorf("playback command is empty")
	}

	args := append(parts[1:], p.soundFile)

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	p.logger.Info("Playing signal",
		zap.String("key", key),
		zap.String("command", parts[0]),
		zap.String("sound_file", p.soundFile))

	cmd := exec.CommandContext(ctx, parts[0], args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("playback command failed: %w (output: %s)",
			err, strings.TrimSpace(string(output)))
	}

	return nil
}

// NopPlayer logs the signal instead of producing sound. Used when no
// playback command is configured.
type NopPlayer struct {
	logger *zap.Logger
}

// NewNopPlayer creates a log-only player.
func NewNopPlayer(logger *zap.Logger) *NopPlayer {
	return &NopPlayer{logger: logger}
}

// Play logs the firing and succeeds.
func (p *NopPlayer) Play(key string) error {
	p.logger.Info("Signal fired (no playback command configured)",
		zap.String("key", key))
	return nil
}
