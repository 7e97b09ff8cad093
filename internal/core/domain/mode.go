package domain

// BotMode is the process-wide operating mode.
type BotMode string

const (
	ModeNormal      BotMode = "normal"
	ModeMaintenance BotMode = "maintenance"
)

// ParseBotMode maps a config value to a mode. Anything unknown is normal.
func ParseBotMode(s string) BotMode {
	if BotMode(s) == ModeMaintenance {
		return ModeMaintenance
	}
	return ModeNormal
}
