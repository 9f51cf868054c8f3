// Package config centralizes all tunable game parameters.
package config

import "time"

// Field geometry - logical units shared by the engine and renderers.
// Lateral positions run 0..FieldWidth, depth runs StartDistance..0.
const (
	FieldWidth    = 800.0
	StartDistance = 100.0
)

// Spawn placement
const (
	LaneMin           = 0.15 // Fraction of FieldWidth
	LaneMax           = 0.85 // Fraction of FieldWidth
	SpawnAttempts     = 10
	StandardExclusion = 90.0  // Lateral gap to other hostiles
	BossExclusion     = 120.0 // Lateral gap to the boss
	ExclusionDepth    = 30.0  // Hostiles closer than this no longer block a lane
	SpriteVariants    = 4
)

// Player
const (
	MaxHP               = 5
	DangerDistance      = 20.0
	DamageCooldownTicks = 15
	StandardDamage      = 1
	BossDamage          = 2
	DamageFlashTicks    = 8 // Ticks the HUD flashes after a hit
	MaxUsernameLength   = 16 // Maximum display length for player names
	DefaultPlayerName   = "Player"
)

// Scoring
const (
	WordScore = 1
	BossBonus = 2
)

// Words
const (
	FallbackWord   = "???"
	MaxTypedLength = 32 // Longest line the typing prompt accepts
)

// FallbackBossWords is used when the boss word source has nothing to offer.
var FallbackBossWords = []string{"핵펀치", "좀비대군", "도시붕괴"}

// Timing
const (
	TickInterval        = 40 * time.Millisecond // ~25 ticks per second
	IntroDuration       = 2 * time.Second
	CountdownFrom       = 3
	CountdownStep       = time.Second
	ProjectileSteps     = 18
	ProjectileStepDelay = 8 * time.Millisecond
)

// Muzzle is where projectiles start, in field units (depth 0 is the player).
const MuzzleX = FieldWidth - 100

// Ranking
const (
	RankingCapacity = 10
)

// Lobby
const (
	LobbyTickTime  = 200 * time.Millisecond // Lobby snapshot refresh interval
	RecentResults  = 5                      // Finished games listed in the lobby
	TopScoresShown = 10
	NoticeSeconds  = 4.0 // Seconds a lobby announcement stays on screen
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 120
	MaxTermHeight         = 40
)
