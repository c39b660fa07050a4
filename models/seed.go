package models

// SeedTournaments returns a fresh copy of the tournament catalog every
// session starts with. Order matters: listings preserve it.
func SeedTournaments() []Tournament {
	return []Tournament{
		{
			ID:              "t1",
			Title:           "Bermuda Clash Championship",
			Type:            TypeSquad,
			Status:          StatusUpcoming,
			EntryFee:        100,
			PrizePool:       1000,
			Map:             "Bermuda",
			StartTime:       "2024-06-15 18:00",
			Participants:    12,
			MaxParticipants: 48,
			Description:     "Elite squad battle on the classic Bermuda map. Winner takes home the lion share of ₹1,000.",
		},
		{
			ID:              "t2",
			Title:           "Duo Deathmatch: Purgatory",
			Type:            TypeDuo,
			Status:          StatusLive,
			EntryFee:        30,
			PrizePool:       1200,
			Map:             "Purgatory",
			StartTime:       "2024-06-14 14:00",
			Participants:    24,
			MaxParticipants: 24,
			Description:     "Fast paced duo survival in the treacherous terrains of Purgatory.",
		},
		{
			ID:              "t5",
			Title:           "Lone Wolf: Iron Cage 1v1",
			Type:            TypeLoneWolf,
			Status:          StatusUpcoming,
			EntryFee:        50,
			PrizePool:       80,
			Map:             "Iron Cage",
			StartTime:       "2024-06-17 15:00",
			Participants:    1,
			MaxParticipants: 2,
			Description:     "The ultimate skill test. Strictly one on one battle in the Iron Cage. No help, just pure aim and gloo wall skills. Win ₹80 prize.",
		},
		{
			ID:              "t3",
			Title:           "Solo Survivor Alpha",
			Type:            TypeSolo,
			Status:          StatusUpcoming,
			EntryFee:        20,
			PrizePool:       800,
			Map:             "Kalahari",
			StartTime:       "2024-06-16 10:00",
			Participants:    35,
			MaxParticipants: 50,
			Description:     "One vs All. Prove you are the ultimate survivor.",
		},
		{
			ID:              "t4",
			Title:           "Squad Rush Night",
			Type:            TypeSquad,
			Status:          StatusCompleted,
			EntryFee:        100,
			PrizePool:       1000,
			Map:             "Bermuda Remastered",
			StartTime:       "2024-06-12 20:00",
			Participants:    48,
			MaxParticipants: 48,
			Description:     "High stakes squad combat under the neon lights. Massive ₹1,000 prize pool.",
		},
	}
}

// SeedWalletHistory is the starter wallet history shown to a new player,
// most recent first.
func SeedWalletHistory() []Transaction {
	return []Transaction{
		{ID: "tx3", Amount: 300, Type: TxWinning, Date: "2024-06-11", Description: "2nd Place: Purgatory Duo"},
		{ID: "tx2", Amount: 50, Type: TxEntryFee, Date: "2024-06-10", Description: "Bermuda Championship Entry"},
		{ID: "tx1", Amount: 500, Type: TxDeposit, Date: "2024-06-01", Description: "Wallet top-up via UPI"},
	}
}

// SeedDepositLog is the platform-wide deposit history the admin dashboard
// aggregates, oldest first.
func SeedDepositLog() []Transaction {
	return []Transaction{
		{ID: "g1", Username: "Shadow_Hunter", Amount: 1500, Type: TxDeposit, Date: "2024-06-14 10:00", Description: "UPI Deposit"},
		{ID: "g2", Username: "Killer_Queen", Amount: 200, Type: TxDeposit, Date: "2024-06-14 11:30", Description: "Card Deposit"},
		{ID: "g3", Username: "Bolt_FF", Amount: 5000, Type: TxDeposit, Date: "2024-06-14 12:15", Description: "Net Banking"},
		{ID: "g4", Username: "Pro_Gamer_001", Amount: 100, Type: TxDeposit, Date: "2024-06-14 14:45", Description: "UPI Deposit"},
		{ID: "g5", Username: "Night_Wolf", Amount: 750, Type: TxDeposit, Date: "2024-06-14 16:20", Description: "UPI Deposit"},
		{ID: "g6", Username: "FF_Warrior_07", Amount: 250, Type: TxDeposit, Date: "2024-06-14 17:05", Description: "UPI Deposit"},
	}
}

// SeedLiveLeaderboard is the static feed behind the dashboard's live panel.
func SeedLiveLeaderboard() []LiveMatchEntry {
	return []LiveMatchEntry{
		{Rank: 1, PlayerName: "Shadow_Ninja", Kills: 8, Status: PlayerAlive},
		{Rank: 2, PlayerName: "StormBreaker", Kills: 6, Status: PlayerAlive},
		{Rank: 3, PlayerName: "GhostProtocol", Kills: 5, Status: PlayerAlive},
		{Rank: 4, PlayerName: "FF_Warrior_07", Kills: 4, Status: PlayerEliminated},
		{Rank: 5, PlayerName: "DragonSlayer", Kills: 3, Status: PlayerEliminated},
	}
}
