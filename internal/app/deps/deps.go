package deps

import (
	"context"
	"remindbot/internal/config"
	"remindbot/internal/core/domain/bot"
	dl "remindbot/internal/core/domain/logging"
	drl "remindbot/internal/core/domain/rate_limiter"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/trigger"
	duow "remindbot/internal/core/domain/unit_of_work"
	"remindbot/internal/core/domain/user"
	dbreminder "remindbot/internal/db/reminder"
	dbtrigger "remindbot/internal/db/trigger"
	uow "remindbot/internal/db/unit_of_work"
	dbuser "remindbot/internal/db/user"
	"remindbot/internal/implementations/logging"
	ratelimiter "remindbot/internal/implementations/rate_limiter"
	remindersender "remindbot/internal/implementations/reminder_sender"
	telegrambotmessagesender "remindbot/internal/implementations/telegram_bot_message_sender"
	"sync"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB    *pgxpool.Pool
	Redis *redis.Client

	Now      func() time.Time
	Location *time.Location

	UnitOfWork         duow.UnitOfWork
	UserRepository     user.UserRepository
	ReminderRepository reminder.ReminderRepository
	TriggerRepository  trigger.Repository

	RateLimiter drl.RateLimiter

	BotMessageSender bot.MessageSender
	ReminderSender   reminder.Sender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initLocation()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.ReminderRepository = dbreminder.NewPgxRepository(deps.DB)
	deps.TriggerRepository = dbtrigger.NewPgxRepository(deps.DB)

	deps.Now = func() time.Time { return time.Now().In(deps.Location) }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)

	deps.BotMessageSender = telegrambotmessagesender.New(
		deps.Config.TelegramBaseURL,
		deps.Config.TelegramToken,
		deps.Config.TelegramRequestTimeout,
	)
	deps.ReminderSender = remindersender.NewTelegram(deps.BotMessageSender)

	return deps, func() {
		closeFuncs := []func(){
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLocation() {
	location, err := deps.Config.Location()
	if err != nil {
		panic(err)
	}
	deps.Location = location
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}
