package models

// WagerOutcome captures a resolved draw before it is formatted for the user.
// It is transient and never persisted.
type WagerOutcome struct {
	Roll  int
	Tier  string
	Delta int64
}

// GambleResult is the outcome of a /gamble wager
type GambleResult struct {
	Roll       int
	Multiplier float64
	Won        bool
	Payout     int64 // total received on a win (multiplier x bet, truncated)
	NewBalance int64
}

// CoinflipResult is the outcome of a /coinflip wager
type CoinflipResult struct {
	Landed     string
	Won        bool
	NewBalance int64
}

// DiceRollResult is the outcome of a /roll wager
type DiceRollResult struct {
	Rolled     int
	Won        bool
	Payout     int64
	NewBalance int64
}

// LotteryResult is the outcome of a /lottery wager
type LotteryResult struct {
	Won        bool
	Jackpot    int64
	NewBalance int64
}

// StealResult is the outcome of a /steal attempt against another member
type StealResult struct {
	Success       bool
	Roll          int
	SuccessChance int
	Amount        int64 // coins taken from the target on success
	Fine          int64 // coins lost by the actor on failure
	CaughtMessage string
	NewBalance    int64
}

// DailyResult is the outcome of a /daily claim
type DailyResult struct {
	Reward     int64
	NewBalance int64
}
