package config

const (
	defaultOutputDirName  = "bili_video_output"
	defaultAudioDirName   = "bili_audio_output"
	defaultFFmpegBinary   = "ffmpeg"
	defaultFFprobeBinary  = "ffprobe"
	defaultAudioFormat    = AudioFormatAuto
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultLockFileName   = ".bilimux.lock"
	defaultConfigLocation = "~/.config/bilimux/config.toml"
	projectConfigName     = "bilimux.toml"
)

// Supported audio-only output formats.
const (
	// AudioFormatAuto stream-copies into a container named after the
	// source codec: m4a for AAC, otherwise the codec itself.
	AudioFormatAuto = "auto"
	AudioFormatM4A  = "m4a"
	AudioFormatMP3  = "mp3"
	AudioFormatFLAC = "flac"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		FFmpeg: FFmpeg{
			ProbeUnknown: true,
		},
		Audio: Audio{
			Format: defaultAudioFormat,
		},
		Output: Output{
			Overwrite: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
