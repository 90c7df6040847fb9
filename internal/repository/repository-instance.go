package repository

import "claimbot/internal/database/mongo"

type Repositories struct {
	UserRepository     *UserRepository
	ClaimRepository    *ClaimRepository
	OvertimeRepository *OvertimeRepository
	RateRepository     *RateRepository
	LedgerRepository   *LedgerRepository
	RedisRepository    *RedisRepo
}

var Repositories_instance = &Repositories{
	UserRepository:     NewUserRepository(mongo.Mongo_Database),
	ClaimRepository:    NewClaimRepository(mongo.Mongo_Database),
	OvertimeRepository: NewOvertimeRepository(mongo.Mongo_Database),
	RateRepository:     NewRateRepository(mongo.Mongo_Database),
	LedgerRepository:   NewLedgerRepository(mongo.Mongo_Database),
	RedisRepository:    NewRedisRepo(),
}
