package workflow

import (
	"fmt"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"logistics-org/constants"
	"logistics-org/database"
	planModel "logistics-org/models/plan"
	requestModel "logistics-org/models/request"
	"logistics-org/models/user"
	"logistics-org/models/vehicleamount"
	"logistics-org/types"
	authTypes "logistics-org/types/auth"
	requestTypes "logistics-org/types/request"
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

	u := user.User{
		Username: username,
		Password: "x",
		Role:     role,
	}
	if city != "" {
		u.City = &city
	}
	require.NoError(t, db.Create(&u).Error)

	return authTypes.Actor{ID: u.ID, Username: u.Username, Role: u.Role, City: city}
}

func seedPlan(t *testing.T, db *gorm.DB, adminID uint, vehicleNumber, from, to string) planModel.Plan {
	t.Helper()

	p := planModel.Plan{
		Uuid:             uuid.NewString(),
		VehicleType:      "truck",
		VehicleNumber:    vehicleNumber,
		NumberOfVehicles: 1,
		Route:            planModel.Route{From: from, To: to},
		Status:           planModel.PlanStatusActive,
		CreatedByID:      adminID,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func cargoPayload(planID uint, price float64) requestTypes.RequestCreateRequest {
	return requestTypes.RequestCreateRequest{
		PlanID:   planID,
		BoxCount: 10,
		Size:     "big",
		Weight:   200,
		Price:    price,
	}
}

func TestSubmitRequest(t *testing.T) {
	t.Run("creates pending request with single history entry", func(t *testing.T) {
		db := newTestDB(t)
		engine := NewEngine(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")
		agent := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")
		p := seedPlan(t, db, admin.ID, "MH01AB1234", "Mumbai", "Delhi")

		created, err := engine.SubmitRequest(agent, cargoPayload(p.ID, 5000))
		require.NoError(t, err)

		assert.Equal(t, requestModel.RequestStatusPending, created.Status)
		assert.Equal(t, agent.ID, created.AgentID)
		require.Len(t, created.StatusHistory, 1)
		assert.Equal(t, created.Status, created.StatusHistory[0].Status)
		assert.Equal(t, agent.ID, created.StatusHistory[0].UpdatedByID)

		var ledgerCount int64
		require.NoError(t, db.Model(&vehicleamount.VehicleAmount{}).Count(&ledgerCount).Error)
		assert.Zero(t, ledgerCount, "submit must not touch the ledger")
	})

	t.Run("unknown plan", func(t *testing.T) {
		db := newTestDB(t)
		engine := NewEngine(db)
		agent := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")

		_, err := engine.SubmitRequest(agent, cargoPayload(9999, 5000))
		assert.ErrorIs(t, err, types.ErrPlanNotFound)
	})

	t.Run("collects every field violation", func(t *testing.T) {
		db := newTestDB(t)
		engine := NewEngine(db)
		agent := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")

		_, err := engine.SubmitRequest(agent, requestTypes.RequestCreateRequest{
			PlanID:   1,
			BoxCount: -2,
			Size:     "huge",
			Weight:   -1,
			Price:    0,
		})
		ve, ok := types.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "Box count must be a positive number")
		assert.Contains(t, ve.Fields, "Invalid size. Must be big, small, or unsized")
		assert.Contains(t, ve.Fields, "Weight must be a positive number")
		assert.Contains(t, ve.Fields, "Price is required")
		assert.Len(t, ve.Fields, 4)
	})
}

func TestChangeStatus(t *testing.T) {
	t.Run("history grows with every call and tracks current status", func(t *testing.T) {
		db := newTestDB(t)
		engine := NewEngine(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")
		agent := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")
		p := seedPlan(t, db, admin.ID, "MH01AB1234", "Mumbai", "Delhi")

		created, err := engine.SubmitRequest(agent, cargoPayload(p.ID, 5000))
		require.NoError(t, err)

		statuses := []string{"rejected", "pending", "cancelled"}
		for _, s := range statuses {
			_, err := engine.ChangeStatus(created.ID, s, admin)
			require.NoError(t, err)
		}

		var updated requestModel.Request
		require.NoError(t, db.Preload("StatusHistory").First(&updated, created.ID).Error)
		require.Len(t, updated.StatusHistory, 1+len(statuses))
		assert.Equal(t, requestModel.RequestStatusCancelled, updated.Status)
		assert.Equal(t, updated.Status, updated.StatusHistory[len(updated.StatusHistory)-1].Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		db := newTestDB(t)
		engine := NewEngine(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")

		_, err := engine.ChangeStatus(1, "nonsense", admin)
		_, ok := types.AsValidationError(err)
		assert.True(t, ok)
	})

	t.Run("non-admin is denied and nothing changes", func(t *testing.T) {
		db := newTestDB(t)
		engine := NewEngine(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")
		agent := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")
		p := seedPlan(t, db, admin.ID, "MH01AB1234", "Mumbai", "Delhi")

		created, err := engine.SubmitRequest(agent, cargoPayload(p.ID, 5000))
		require.NoError(t, err)

		_, err = engine.ChangeStatus(created.ID, "approved", agent)
		assert.ErrorIs(t, err, types.ErrPermissionDenied)

		var unchanged requestModel.Request
		require.NoError(t, db.Preload("StatusHistory").First(&unchanged, created.ID).Error)
		assert.Equal(t, requestModel.RequestStatusPending, unchanged.Status)
		assert.Len(t, unchanged.StatusHistory, 1)
	})

	t.Run("unknown request", func(t *testing.T) {
		db := newTestDB(t)
		engine := NewEngine(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")

		_, err := engine.ChangeStatus(424242, "approved", admin)
		assert.ErrorIs(t, err, types.ErrRequestNotFound)
	})
}

func TestApprovalLedger(t *testing.T) {
	t.Run("first approval creates the ledger row", func(t *testing.T) {
		db := newTestDB(t)
		engine := NewEngine(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")
		agent := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")
		p := seedPlan(t, db, admin.ID, "MH01AB1234", "Mumbai", "Delhi")

		created, err := engine.SubmitRequest(agent, cargoPayload(p.ID, 5000))
		require.NoError(t, err)

		updated, err := engine.ChangeStatus(created.ID, "approved", admin)
		require.NoError(t, err)
		assert.Equal(t, requestModel.RequestStatusApproved, updated.Status)

		var ledger vehicleamount.VehicleAmount
		require.NoError(t, db.Preload("ApprovedRequests").
			Where("vehicle_number = ?", "MH01AB1234").First(&ledger).Error)
		assert.True(t, ledger.TotalAmount.Equal(decimal.NewFromInt(5000)),
			"got total %s", ledger.TotalAmount)
		require.Len(t, ledger.ApprovedRequests, 1)
		assert.Equal(t, created.ID, ledger.ApprovedRequests[0].RequestID)
	})

	t.Run("second approval accumulates", func(t *testing.T) {
		db := newTestDB(t)
		engine := NewEngine(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")
		agent := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")
		p := seedPlan(t, db, admin.ID, "MH01AB1234", "Mumbai", "Delhi")

		first, err := engine.SubmitRequest(agent, cargoPayload(p.ID, 5000))
		require.NoError(t, err)
		second, err := engine.SubmitRequest(agent, cargoPayload(p.ID, 3000))
		require.NoError(t, err)

		_, err = engine.ChangeStatus(first.ID, "approved", admin)
		require.NoError(t, err)
		_, err = engine.ChangeStatus(second.ID, "approved", admin)
		require.NoError(t, err)

		var ledger vehicleamount.VehicleAmount
		require.NoError(t, db.Preload("ApprovedRequests").
			Where("vehicle_number = ?", "MH01AB1234").First(&ledger).Error)
		assert.True(t, ledger.TotalAmount.Equal(decimal.NewFromInt(8000)),
			"got total %s", ledger.TotalAmount)
		assert.Len(t, ledger.ApprovedRequests, 2)
	})

	t.Run("total always equals the sum of entries", func(t *testing.T) {
		db := newTestDB(t)
		engine := NewEngine(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")
		agent := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")
		p := seedPlan(t, db, admin.ID, "MH01AB1234", "Mumbai", "Delhi")

		prices := []float64{1200.50, 700, 99.99}
		for _, price := range prices {
			created, err := engine.SubmitRequest(agent, cargoPayload(p.ID, price))
			require.NoError(t, err)
			_, err = engine.ChangeStatus(created.ID, "approved", admin)
			require.NoError(t, err)

			var ledger vehicleamount.VehicleAmount
			require.NoError(t, db.Preload("ApprovedRequests").
				Where("vehicle_number = ?", "MH01AB1234").First(&ledger).Error)

			sum := decimal.Zero
			for _, entry := range ledger.ApprovedRequests {
				sum = sum.Add(entry.Price)
			}
			assert.True(t, ledger.TotalAmount.Equal(sum),
				"total %s != entry sum %s", ledger.TotalAmount, sum)
		}
	})

	t.Run("missing vehicle number aborts without persisting anything", func(t *testing.T) {
		db := newTestDB(t)
		engine := NewEngine(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")
		agent := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")
		p := seedPlan(t, db, admin.ID, "", "Mumbai", "Delhi")

		created, err := engine.SubmitRequest(agent, cargoPayload(p.ID, 5000))
		require.NoError(t, err)

		_, err = engine.ChangeStatus(created.ID, "approved", admin)
		ve, ok := types.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Error(), "Invalid plan data")

		var unchanged requestModel.Request
		require.NoError(t, db.Preload("StatusHistory").First(&unchanged, created.ID).Error)
		assert.Equal(t, requestModel.RequestStatusPending, unchanged.Status)
		assert.Len(t, unchanged.StatusHistory, 1)

		var ledgerCount int64
		require.NoError(t, db.Model(&vehicleamount.VehicleAmount{}).Count(&ledgerCount).Error)
		assert.Zero(t, ledgerCount)
	})

	t.Run("concurrent approvals against one vehicle do not lose updates", func(t *testing.T) {
		db := newTestDB(t)
		engine := NewEngine(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")
		agent := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")
		p := seedPlan(t, db, admin.ID, "MH01AB1234", "Mumbai", "Delhi")

		const n = 8
		ids := make([]uint, 0, n)
		for i := 0; i < n; i++ {
			created, err := engine.SubmitRequest(agent, cargoPayload(p.ID, 100))
			require.NoError(t, err)
			ids = append(ids, created.ID)
		}

		var wg sync.WaitGroup
		errs := make(chan error, n)
		for _, id := range ids {
			wg.Add(1)
			go func(id uint) {
				defer wg.Done()
				_, err := engine.ChangeStatus(id, "approved", admin)
				errs <- err
			}(id)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		var ledger vehicleamount.VehicleAmount
		require.NoError(t, db.Preload("ApprovedRequests").
			Where("vehicle_number = ?", "MH01AB1234").First(&ledger).Error)
		assert.True(t, ledger.TotalAmount.Equal(decimal.NewFromInt(n*100)),
			"got total %s", ledger.TotalAmount)
		assert.Len(t, ledger.ApprovedRequests, n)
	})
}

func TestVehicleLedger(t *testing.T) {
	t.Run("admin sees every ledger with resolved plans", func(t *testing.T) {
		db := newTestDB(t)
		engine := NewEngine(db)
		admin := seedUser(t, db, "admin123", constants.RoleAdmin, "")
		agent := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")

		for i, vn := range []string{"MH01AB1234", "DL05XY9000"} {
			p := seedPlan(t, db, admin.ID, vn, "Mumbai", "Delhi")
			created, err := engine.SubmitRequest(agent, cargoPayload(p.ID, float64(1000*(i+1))))
			require.NoError(t, err)
			_, err = engine.ChangeStatus(created.ID, "approved", admin)
			require.NoError(t, err)
		}

		ledgers, err := engine.VehicleLedger(admin)
		require.NoError(t, err)
		require.Len(t, ledgers, 2)
		for _, ledger := range ledgers {
			require.Len(t, ledger.ApprovedRequests, 1)
			entry := ledger.ApprovedRequests[0]
			assert.NotZero(t, entry.Request.ID, "request must be resolved")
			assert.Equal(t, ledger.VehicleNumber, entry.Request.Plan.VehicleNumber,
				fmt.Sprintf("plan must be resolved for %s", ledger.VehicleNumber))
		}
	})

	t.Run("non-admin is denied", func(t *testing.T) {
		db := newTestDB(t)
		engine := NewEngine(db)
		agent := seedUser(t, db, "agent_mumbai", constants.RoleAgent, "Mumbai")

		_, err := engine.VehicleLedger(agent)
		assert.ErrorIs(t, err, types.ErrPermissionDenied)
	})
}
