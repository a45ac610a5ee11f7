package visibility

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"logistics-org/constants"
	"logistics-org/database"
	planModel "logistics-org/models/plan"
	requestModel "logistics-org/models/request"
	"logistics-org/models/user"
	"logistics-org/types"
	authTypes "logistics-org/types/auth"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string, city string) authTypes.Actor {
	t.Helper()

	u := user.User{Username: username, Password: "x", Role: role}
	if city != "" {
		u.City = &city
	}
	require.NoError(t, db.Create(&u).Error)
	return authTypes.Actor{ID: u.ID, Username: u.Username, Role: u.Role, City: city}
}

func seedPlan(t *testing.T, db *gorm.DB, adminID uint, from, to string, startingTime time.Time) planModel.Plan {
	t.Helper()

	p := planModel.Plan{
		Uuid:             uuid.NewString(),
		VehicleType:      "truck",
		VehicleNumber:    "MH01AB1234",
		NumberOfVehicles: 1,
		Route:            planModel.Route{From: from, To: to},
		StartingTime:     startingTime,
		Status:           planModel.PlanStatusActive,
		CreatedByID:      adminID,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedRequest(t *testing.T, db *gorm.DB, planID, agentID uint) requestModel.Request {
	t.Helper()

	r := requestModel.Request{
		Uuid:     uuid.NewString(),
		PlanID:   planID,
		AgentID:  agentID,
		BoxCount: 1,
		Size:     requestModel.CargoSizeSmall,
		Weight:   10,
		Price:    100,
		Status:   requestModel.RequestStatusPending,
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func TestListPlans(t *testing.T) {
	departure := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("admin sees all plans", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewService(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")
		seedPlan(t, db, admin.ID, "Mumbai", "Delhi", departure)
		seedPlan(t, db, admin.ID, "Chennai", "Kolkata", departure)

		plans, err := svc.ListPlans(admin, nil)
		require.NoError(t, err)
		assert.Len(t, plans, 2)
	})

	t.Run("agent sees only plans touching their city", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewService(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")
		seedPlan(t, db, admin.ID, "Mumbai", "Delhi", departure)

		mumbai := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")
		delhi := seedUser(t, db, "agent_delhi", constants.RoleAgent, "Delhi")
		chennai := seedUser(t, db, "agent_chennai", constants.RoleAgent, "Chennai")

		plans, err := svc.ListPlans(mumbai, nil)
		require.NoError(t, err)
		assert.Len(t, plans, 1, "origin city must match")

		plans, err = svc.ListPlans(delhi, nil)
		require.NoError(t, err)
		assert.Len(t, plans, 1, "destination city must match")

		plans, err = svc.ListPlans(chennai, nil)
		require.NoError(t, err)
		assert.Empty(t, plans)
	})

	t.Run("unknown role is denied", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewService(db)

		_, err := svc.ListPlans(authTypes.Actor{ID: 1, Role: "visitor"}, nil)
		assert.ErrorIs(t, err, types.ErrPermissionDenied)
	})

	t.Run("date filter narrows to a departure day", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewService(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")
		seedPlan(t, db, admin.ID, "Mumbai", "Delhi", departure)
		seedPlan(t, db, admin.ID, "Mumbai", "Delhi", departure.AddDate(0, 0, 3))

		day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		plans, err := svc.ListPlans(admin, &day)
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, departure.Unix(), plans[0].StartingTime.Unix())
	})
}

func TestListRequests(t *testing.T) {
	t.Run("admin lists everything", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewService(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")
		mumbai := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")
		delhi := seedUser(t, db, "agent_delhi", constants.RoleAgent, "Delhi")
		p := seedPlan(t, db, admin.ID, "Mumbai", "Delhi", time.Now())
		seedRequest(t, db, p.ID, mumbai.ID)
		seedRequest(t, db, p.ID, delhi.ID)

		requests, err := svc.ListRequests(admin, ScopeAll)
		require.NoError(t, err)
		assert.Len(t, requests, 2)
	})

	t.Run("agent lists only their own", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewService(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")
		mumbai := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")
		delhi := seedUser(t, db, "agent_delhi", constants.RoleAgent, "Delhi")
		p := seedPlan(t, db, admin.ID, "Mumbai", "Delhi", time.Now())
		mine := seedRequest(t, db, p.ID, mumbai.ID)
		seedRequest(t, db, p.ID, delhi.ID)

		requests, err := svc.ListRequests(mumbai, ScopeMine)
		require.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, mine.ID, requests[0].ID)
	})

	t.Run("crossed role and scope are denied", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewService(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")
		mumbai := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")

		_, err := svc.ListRequests(admin, ScopeMine)
		assert.ErrorIs(t, err, types.ErrPermissionDenied)

		_, err = svc.ListRequests(mumbai, ScopeAll)
		assert.ErrorIs(t, err, types.ErrPermissionDenied)

		_, err = svc.ListRequests(authTypes.Actor{Role: "visitor"}, ScopeAll)
		assert.ErrorIs(t, err, types.ErrPermissionDenied)
	})
}
