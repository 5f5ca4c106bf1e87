package config

const (
	defaultWorkDir                 = "~/.local/share/subweave/work"
	defaultOutputDir               = "~/subtitles"
	defaultLogDir                  = "~/.local/share/subweave/logs"
	defaultChunkMinutes            = 5
	defaultTranscriptionBaseURL    = "https://api.openai.com/v1"
	defaultTranscriptionModel      = "whisper-1"
	defaultTranscriptionLanguage   = "zh"
	defaultTranscriptionTimeout    = 300
	defaultTranscriptionRetries    = 5
	defaultRefinementModel         = "gemini-2.5-pro"
	defaultRefinementRetries       = 3
	defaultRefinementRetryBaseSecs = 2
	defaultFFmpegBinary            = "ffmpeg"
	defaultFFprobeBinary           = "ffprobe"
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:   defaultWorkDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Chunking: Chunking{
			Minutes: defaultChunkMinutes,
		},
		Transcription: Transcription{
			BaseURL:        defaultTranscriptionBaseURL,
			Model:          defaultTranscriptionModel,
			Language:       defaultTranscriptionLanguage,
			TimeoutSeconds: defaultTranscriptionTimeout,
			RetryAttempts:  defaultTranscriptionRetries,
		},
		Refinement: Refinement{
			Enabled:          true,
			Model:            defaultRefinementModel,
			RetryAttempts:    defaultRefinementRetries,
			RetryBaseSeconds: defaultRefinementRetryBaseSecs,
			VerifyStructure:  true,
		},
		Tools: Tools{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
