package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"applebot/models"
)

// Command names used as cooldown keys. Each command's window is independent.
const (
	CommandGamble   = "gamble"
	CommandCoinflip = "coinflip"
	CommandRoll     = "roll"
	CommandLottery  = "lottery"
	CommandSteal    = "steal"
	CommandDaily    = "daily"
)

const (
	gambleCooldown   = 2 * time.Second
	coinflipCooldown = 10 * time.Second
	rollCooldown     = 10 * time.Second
	lotteryCooldown  = 10 * time.Second
	stealCooldown    = 10 * time.Minute
	dailyCooldown    = 24 * time.Hour

	dailyReward = 1000

	// d6 guess pays 5x the bet on a hit
	rollMultiplier = 5
	coinflipMultiplier = 2

	lotteryWinChance  = 10 // percent
	lotteryJackpotMin = 1000
	lotteryJackpotMax = 5000

	stealAmountMin = 50
	stealAmountMax = 300
	stealFineMin   = 20
	stealFineMax   = 100

	// Stealing is easier under cover of night
	stealDayChance   = 30 // percent, hours [6, 18)
	stealNightChance = 60 // percent, otherwise
)

// gambleTiers maps a d100 roll to a payout multiplier: the first tier whose
// upper bound the roll does not exceed wins. Multiplier 0 loses the bet;
// otherwise the player receives multiplier x bet total.
var gambleTiers = []struct {
	Upper      int
	Multiplier float64
}{
	{45, 0},
	{80, 1.5},
	{95, 2},
	{99, 3},
	{100, 10},
}

var caughtMessages = []string{
	"You stepped on a squeaky toy and alerted the guards!",
	"You sneezed while hiding, and everyone heard you!",
	"A cat knocked over a vase and blamed you!",
	"You slipped on a banana peel and fell into the trap!",
	"The security camera spotted you breakdancing in the vault!",
	"You got stuck in the laundry basket.",
	"You tried to steal coins, but ended up stealing a cursed artifact!",
}

// economyService implements EconomyService over a LedgerStore. All mutating
// commands run under one mutex: each command's read-modify-write against the
// ledger executes as a unit, so racing commands cannot lose updates.
type economyService struct {
	mu    sync.Mutex
	store LedgerStore
	gate  *CooldownGate
	loc   *time.Location
	rng   *rand.Rand
	now   func() time.Time
}

// NewEconomyService creates the economy engine. The location determines the
// wall-clock hour used for time-of-day dependent odds.
func NewEconomyService(store LedgerStore, loc *time.Location) EconomyService {
	return &economyService{
		store: store,
		gate:  NewCooldownGate(store),
		loc:   loc,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

func (s *economyService) Balance(ctx context.Context, userID int64) (int64, error) {
	return s.store.GetBalance(ctx, userID)
}

func (s *economyService) Grant(ctx context.Context, userID int64, amount int64) (int64, error) {
	if amount < 0 {
		return 0, Rejectf("Amount cannot be negative!")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newBalance, err := s.store.ApplyDelta(ctx, userID, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to grant %d to user %d: %w", amount, userID, err)
	}
	return newBalance, nil
}

func (s *economyService) Daily(ctx context.Context, userID int64) (*models.DailyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if err := s.checkGate(ctx, userID, CommandDaily, now); err != nil {
		return nil, err
	}

	newBalance, err := s.store.ApplyDelta(ctx, userID, dailyReward)
	if err != nil {
		return nil, fmt.Errorf("failed to credit daily reward for user %d: %w", userID, err)
	}
	if err := s.gate.Arm(ctx, userID, CommandDaily, now, dailyCooldown); err != nil {
		return nil, fmt.Errorf("failed to arm daily cooldown for user %d: %w", userID, err)
	}

	return &models.DailyResult{Reward: dailyReward, NewBalance: newBalance}, nil
}

func (s *economyService) Gamble(ctx context.Context, userID int64, bet int64) (*models.GambleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if err := s.checkGate(ctx, userID, CommandGamble, now); err != nil {
		return nil, err
	}
	if err := s.checkBet(ctx, userID, bet); err != nil {
		return nil, err
	}

	roll := s.d100()
	multiplier := gambleMultiplier(roll)

	var delta, payout int64
	won := multiplier > 0
	if won {
		payout = int64(float64(bet) * multiplier)
		delta = payout - bet
	} else {
		delta = -bet
	}

	newBalance, err := s.store.ApplyDelta(ctx, userID, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to settle gamble for user %d: %w", userID, err)
	}
	if err := s.gate.Arm(ctx, userID, CommandGamble, now, gambleCooldown); err != nil {
		return nil, fmt.Errorf("failed to arm gamble cooldown for user %d: %w", userID, err)
	}

	return &models.GambleResult{
		Roll:       roll,
		Multiplier: multiplier,
		Won:        won,
		Payout:     payout,
		NewBalance: newBalance,
	}, nil
}

func (s *economyService) Coinflip(ctx context.Context, userID int64, bet int64, choice string) (*models.CoinflipResult, error) {
	if choice != "heads" && choice != "tails" {
		return nil, Rejectf("Pick heads or tails!")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if err := s.checkGate(ctx, userID, CommandCoinflip, now); err != nil {
		return nil, err
	}
	if err := s.checkBet(ctx, userID, bet); err != nil {
		return nil, err
	}

	landed := "heads"
	if s.rng.Intn(2) == 1 {
		landed = "tails"
	}

	won := landed == choice
	delta := -bet
	if won {
		delta = bet * (coinflipMultiplier - 1)
	}

	newBalance, err := s.store.ApplyDelta(ctx, userID, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to settle coinflip for user %d: %w", userID, err)
	}
	if err := s.gate.Arm(ctx, userID, CommandCoinflip, now, coinflipCooldown); err != nil {
		return nil, fmt.Errorf("failed to arm coinflip cooldown for user %d: %w", userID, err)
	}

	return &models.CoinflipResult{Landed: landed, Won: won, NewBalance: newBalance}, nil
}

func (s *economyService) Roll(ctx context.Context, userID int64, bet int64, guess int) (*models.DiceRollResult, error) {
	if guess < 1 || guess > 6 {
		return nil, Rejectf("Invalid guess! Guess a number between 1 and 6.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if err := s.checkGate(ctx, userID, CommandRoll, now); err != nil {
		return nil, err
	}
	if err := s.checkBet(ctx, userID, bet); err != nil {
		return nil, err
	}

	rolled := 1 + s.rng.Intn(6)
	won := rolled == guess

	var delta, payout int64
	if won {
		payout = bet * rollMultiplier
		delta = payout - bet
	} else {
		delta = -bet
	}

	newBalance, err := s.store.ApplyDelta(ctx, userID, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to settle roll for user %d: %w", userID, err)
	}
	if err := s.gate.Arm(ctx, userID, CommandRoll, now, rollCooldown); err != nil {
		return nil, fmt.Errorf("failed to arm roll cooldown for user %d: %w", userID, err)
	}

	return &models.DiceRollResult{Rolled: rolled, Won: won, Payout: payout, NewBalance: newBalance}, nil
}

func (s *economyService) Lottery(ctx context.Context, userID int64, bet int64) (*models.LotteryResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if err := s.checkGate(ctx, userID, CommandLottery, now); err != nil {
		return nil, err
	}
	if err := s.checkBet(ctx, userID, bet); err != nil {
		return nil, err
	}

	won := s.d100() <= lotteryWinChance

	var delta, jackpot int64
	if won {
		// Jackpot is a flat prize; the stake is not consumed on a win
		jackpot = lotteryJackpotMin + int64(s.rng.Intn(lotteryJackpotMax-lotteryJackpotMin+1))
		delta = jackpot
	} else {
		delta = -bet
	}

	newBalance, err := s.store.ApplyDelta(ctx, userID, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to settle lottery for user %d: %w", userID, err)
	}
	if err := s.gate.Arm(ctx, userID, CommandLottery, now, lotteryCooldown); err != nil {
		return nil, fmt.Errorf("failed to arm lottery cooldown for user %d: %w", userID, err)
	}

	return &models.LotteryResult{Won: won, Jackpot: jackpot, NewBalance: newBalance}, nil
}

func (s *economyService) Steal(ctx context.Context, userID int64, targetID int64) (*models.StealResult, error) {
	if userID == targetID {
		return nil, Rejectf("You cannot steal from yourself!")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if err := s.checkGate(ctx, userID, CommandSteal, now); err != nil {
		return nil, err
	}

	amount := int64(stealAmountMin + s.rng.Intn(stealAmountMax-stealAmountMin+1))

	targetBalance, err := s.store.GetBalance(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get target balance for user %d: %w", targetID, err)
	}
	if targetBalance < amount {
		return nil, Rejectf("They don't have enough coins to steal from! They only have %d coins.", targetBalance)
	}

	chance := stealSuccessChance(now.In(s.loc).Hour())
	roll := s.d100()

	result := &models.StealResult{
		Roll:          roll,
		SuccessChance: chance,
		Success:       roll <= chance,
	}

	if result.Success {
		if _, err := s.store.ApplyDelta(ctx, userID, amount); err != nil {
			return nil, fmt.Errorf("failed to credit stolen coins to user %d: %w", userID, err)
		}
		if _, err := s.store.ApplyDelta(ctx, targetID, -amount); err != nil {
			return nil, fmt.Errorf("failed to debit stolen coins from user %d: %w", targetID, err)
		}
		result.Amount = amount
	} else {
		fine := int64(stealFineMin + s.rng.Intn(stealFineMax-stealFineMin+1))
		if _, err := s.store.ApplyDelta(ctx, userID, -fine); err != nil {
			return nil, fmt.Errorf("failed to fine user %d: %w", userID, err)
		}
		result.Fine = fine
		result.CaughtMessage = caughtMessages[s.rng.Intn(len(caughtMessages))]
	}

	newBalance, err := s.store.GetBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for user %d: %w", userID, err)
	}
	result.NewBalance = newBalance

	if err := s.gate.Arm(ctx, userID, CommandSteal, now, stealCooldown); err != nil {
		return nil, fmt.Errorf("failed to arm steal cooldown for user %d: %w", userID, err)
	}

	return result, nil
}

// checkGate rejects with a user-facing message when the command is on cooldown
func (s *economyService) checkGate(ctx context.Context, userID int64, command string, now time.Time) error {
	blocked, err := s.gate.IsBlocked(ctx, userID, command, now)
	if err != nil {
		return fmt.Errorf("failed to check %s cooldown for user %d: %w", command, userID, err)
	}
	if !blocked {
		return nil
	}

	remaining, err := s.gate.Remaining(ctx, userID, command, now)
	if err != nil {
		return fmt.Errorf("failed to get %s cooldown for user %d: %w", command, userID, err)
	}
	return Rejectf("⏳ You are on cooldown! Please wait %s.", FormatRemaining(remaining))
}

// checkBet enforces the wager preconditions: a positive bet that does not
// exceed the actor's current balance
func (s *economyService) checkBet(ctx context.Context, userID int64, bet int64) error {
	if bet <= 0 {
		return Rejectf("You must bet at least 1 coin!")
	}

	balance, err := s.store.GetBalance(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get balance for user %d: %w", userID, err)
	}
	if bet > balance {
		return Rejectf("You don't have enough coins! Your balance: %d", balance)
	}
	return nil
}

func (s *economyService) d100() int {
	return 1 + s.rng.Intn(100)
}

// gambleMultiplier maps a d100 roll through the tier table: the first upper
// bound the roll does not exceed determines the payout
func gambleMultiplier(roll int) float64 {
	for _, tier := range gambleTiers {
		if roll <= tier.Upper {
			return tier.Multiplier
		}
	}
	return 0
}

// stealSuccessChance is a pure function of the local wall-clock hour
func stealSuccessChance(hour int) int {
	if hour >= 6 && hour < 18 {
		return stealDayChance
	}
	return stealNightChance
}
