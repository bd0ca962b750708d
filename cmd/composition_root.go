package cmd

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"dispatch/internal/adapters/out/feed"
	"dispatch/internal/adapters/out/memory/bidledger"
	membroker "dispatch/internal/adapters/out/memory/broker"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/allocation"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	broker      *membroker.Broker
	ledger      *bidledger.Ledger
	ordersFeed  *feed.OrdersFeed
	roster      []*courier.Courier
	coordinator *allocation.Coordinator
	logger      *slog.Logger
}

// NewCompositionRoot wires the in-process infrastructure: the broker and
// bid ledger shared by the coordinator and the agents, the order feed and
// courier roster loaded from disk, and the postgres-backed stats side.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	ordersFeed, err := feed.NewOrdersFeed(configs.OrdersFeedPath, rand.NewSource(time.Now().UnixNano()))
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("load orders feed: %w", err)
	}

	roster, err := feed.LoadRoster(configs.RosterPath)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("load courier roster: %w", err)
	}

	broker := membroker.NewBroker()
	ledger := bidledger.NewLedger()

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		broker:     broker,
		ledger:     ledger,
		ordersFeed: ordersFeed,
		roster:     roster,
		coordinator: allocation.NewCoordinator(
			ledger,
			broker,
			configs.BidWindow,
			configs.ConfirmationWindow,
			logger,
		),
		logger: logger,
	}, nil
}

// Broker returns the in-process broker for shutdown.
func (c *CompositionRoot) Broker() *membroker.Broker {
	return c.broker
}

// Roster returns the couriers loaded from the roster file.
func (c *CompositionRoot) Roster() []*courier.Courier {
	return c.roster
}

func (c *CompositionRoot) CreateAnnounceCourseCommandHandler() commands.AnnounceCourseCommandHandler {
	return commands.NewAnnounceCourseCommandHandler(c.ordersFeed, c.coordinator)
}

func (c *CompositionRoot) CreateRecordConfirmedCourseCommandHandler() commands.RecordConfirmedCourseCommandHandler {
	var f commands.StatsUoWFactory = FuncStatsUoWFactory(func() commands.StatsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordConfirmedCourseCommandHandler(f)
}

func (c *CompositionRoot) CreatePruneEarningsCommandHandler() commands.PruneEarningsCommandHandler {
	var f commands.EarningsUoWFactory = FuncEarningsUoWFactory(func() commands.EarningsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPruneEarningsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetCourierStatsQueryHandler() queries.GetCourierStatsQueryHandler {
	return queries.NewGetCourierStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCompletedCoursesQueryHandler() queries.GetCompletedCoursesQueryHandler {
	return queries.NewGetCompletedCoursesQueryHandler(c.gormDB)
}

// CreateCourierAgents builds one autonomous agent per roster entry, capped
// at the configured courier count when positive. Each agent draws from its
// own random source so bidding decisions stay independent.
func (c *CompositionRoot) CreateCourierAgents() ([]*allocation.CourierAgent, error) {
	members := c.roster
	if c.configs.CourierCount > 0 && c.configs.CourierCount < len(members) {
		members = members[:c.configs.CourierCount]
	}

	agents := make([]*allocation.CourierAgent, 0, len(members))
	for i, member := range members {
		policy := allocation.NewRandomPolicy(
			c.configs.BidProbability,
			rand.NewSource(time.Now().UnixNano()+int64(i)),
		)

		agent, err := allocation.NewCourierAgent(member, c.ledger, c.broker, policy, c.logger)
		if err != nil {
			return nil, fmt.Errorf("create agent for courier %s: %w", member.ID(), err)
		}
		agents = append(agents, agent)
	}

	return agents, nil
}

func (c *CompositionRoot) CreateStatsListener() *allocation.StatsListener {
	recorder := c.CreateRecordConfirmedCourseCommandHandler()
	return allocation.NewStatsListener(c.broker, recorder, c.logger)
}

type FuncStatsUoWFactory func() commands.StatsUoW

func (f FuncStatsUoWFactory) Create() commands.StatsUoW {
	return f()
}

type FuncEarningsUoWFactory func() commands.EarningsUoW

func (f FuncEarningsUoWFactory) Create() commands.EarningsUoW {
	return f()
}
