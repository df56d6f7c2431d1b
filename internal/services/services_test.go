package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stitts-dev/strikelab/internal/coach"
	"github.com/stitts-dev/strikelab/internal/connectors"
	"github.com/stitts-dev/strikelab/internal/models"
	"github.com/stitts-dev/strikelab/pkg/database"
	applog "github.com/stitts-dev/strikelab/pkg/logger"
)

const sampleCSV = `Shot,Club,Carry,Total,Ball Speed,Club Speed,Smash,Face to Path,Offline
1,7i,150,160,110,80,1.375,-0.5,2
2,7-iron,152,162,111,80,1.39,0.5,-3
3,DR,230,250,150,105,1.43,1.0,8
`

// MockProvider stands in for an external text generation provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProvider) Generate(ctx context.Context, req coach.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newTestDB opens a private in-memory sqlite database with the schema
// migrated. One connection keeps every query on the same database.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, gormDB.AutoMigrate(models.All()...))
	return &database.DB{DB: gormDB}
}

type ServicesTestSuite struct {
	suite.Suite
	ctx      context.Context
	db       *database.DB
	owner    uuid.UUID
	imports  *ImportService
	sessions *SessionService
	coach    *CoachService
}

func (s *ServicesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = newTestDB(s.T())
	s.owner = uuid.New()

	log := quietLogger()
	s.imports = NewImportService(s.db, log)
	s.sessions = NewSessionService(s.db, NewCacheService(nil), time.Minute, log)
	s.coach = NewCoachService(s.db, coach.NewChain(log), log, "en", 10)
}

func (s *ServicesTestSuite) importSample() uuid.UUID {
	res, err := s.imports.ImportCSV(s.ctx, []byte(sampleCSV), s.owner, "Range day", "")
	s.Require().NoError(err)
	s.Require().True(res.Success)
	return *res.SessionID
}

func (s *ServicesTestSuite) TestImportCSVPersistsEveryRow() {
	res, err := s.imports.ImportCSV(s.ctx, []byte(sampleCSV), s.owner, "", "simulator")
	s.Require().NoError(err)

	s.True(res.Success)
	s.Equal(3, res.ShotsImported)
	s.Empty(res.Errors)
	s.Require().NotNil(res.SessionID)

	var session models.Session
	s.Require().NoError(s.db.First(&session, "id = ?", *res.SessionID).Error)
	s.Equal("csv", session.Source)
	s.Equal("simulator", session.SessionType)
	s.Equal(s.owner, session.OwnerID)
	s.NotEmpty(session.ComputedStats)

	rows, err := s.sessions.Shots(s.ctx, s.owner, session.ID)
	s.Require().NoError(err)
	s.Require().Len(rows, 3)
	s.Equal("7 Iron", rows[0].Club)
	s.Equal("7 Iron", rows[1].Club)
	s.Equal("Driver", rows[2].Club)
	s.InDelta(150.0, *rows[0].CarryDistance, 1e-9)
}

func (s *ServicesTestSuite) TestImportCSVHeaderOnly() {
	res, err := s.imports.ImportCSV(s.ctx, []byte("Club,Carry\n"), s.owner, "", "")
	s.Require().NoError(err)

	s.False(res.Success)
	s.Nil(res.SessionID)
	s.Equal([]string{"No valid shots found in CSV"}, res.Errors)

	var count int64
	s.db.Model(&models.Session{}).Count(&count)
	s.Zero(count)
}

func (s *ServicesTestSuite) TestImportCSVWithoutHeaderFails() {
	_, err := s.imports.ImportCSV(s.ctx, []byte(""), s.owner, "", "")
	s.Require().Error(err)
	s.True(IsStructural(err))
}

func (s *ServicesTestSuite) TestImportCSVWarnsOnUnknownColumns() {
	res, err := s.imports.ImportCSV(s.ctx, []byte("Club,Carry,Weather\n7i,150,sunny\n"), s.owner, "", "")
	s.Require().NoError(err)
	s.True(res.Success)
	s.Len(res.Warnings, 1)
	s.Contains(res.Warnings[0], "Weather")
}

func (s *ServicesTestSuite) TestImportVendorPayload() {
	payload := `{
		"session_id": "abc",
		"date": "2024-05-01T10:00:00Z",
		"shots": [
			{"shot_number": 2, "club": "DR", "carry": 240, "ball_speed": 160},
			{"shot_number": 1, "club": "7I", "carry": 155}
		]
	}`
	res, err := s.imports.ImportPayload(s.ctx, "trackman", []byte(payload), s.owner, "", "")
	s.Require().NoError(err)
	s.Require().True(res.Success)
	s.Equal(2, res.ShotsImported)

	session, err := s.sessions.Get(s.ctx, s.owner, *res.SessionID)
	s.Require().NoError(err)
	s.Equal("trackman", session.Source)
	s.Require().NotNil(session.Name)
	s.Equal("TrackMan Session abc", *session.Name)
	s.Equal(2024, session.SessionDate.Year())
	s.Equal(2, session.ShotCount)

	rows, err := s.sessions.Shots(s.ctx, s.owner, session.ID)
	s.Require().NoError(err)
	s.Equal(1, rows[0].ShotNumber)
	s.Equal("7 Iron", rows[0].Club)
}

func (s *ServicesTestSuite) TestImportPayloadErrors() {
	_, err := s.imports.ImportPayload(s.ctx, "garmin", []byte(`{}`), s.owner, "", "")
	s.ErrorIs(err, connectors.ErrUnknownConnector)

	_, err = s.imports.ImportPayload(s.ctx, "trackman", []byte(`{"foo": 1}`), s.owner, "", "")
	s.Require().Error(err)
	s.True(IsStructural(err))

	res, err := s.imports.ImportPayload(s.ctx, "topgolf", []byte(`{"shots": []}`), s.owner, "", "")
	s.Require().NoError(err)
	s.False(res.Success)
	s.Equal([]string{"No valid shots found in payload"}, res.Errors)
}

func (s *ServicesTestSuite) TestListIsOwnerScopedAndNewestFirst() {
	older := s.importSample()
	newer, err := s.imports.ImportPayload(s.ctx, "topgolf",
		[]byte(`{"date": "2099-01-01", "shots": [{"club": "7i", "carry": 150}]}`), s.owner, "", "")
	s.Require().NoError(err)

	_, err = s.imports.ImportCSV(s.ctx, []byte(sampleCSV), uuid.New(), "", "")
	s.Require().NoError(err)

	list, total, err := s.sessions.List(s.ctx, s.owner, SessionFilter{})
	s.Require().NoError(err)
	s.EqualValues(2, total)
	s.Require().Len(list, 2)
	s.Equal(*newer.SessionID, list[0].ID)
	s.Equal(older, list[1].ID)
	s.Equal(3, list[1].ShotCount)
}

func (s *ServicesTestSuite) TestGetOtherOwnersSessionIsNotFound() {
	id := s.importSample()
	_, err := s.sessions.Get(s.ctx, uuid.New(), id)
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *ServicesTestSuite) TestUpdateShotRecomputesStats() {
	id := s.importSample()
	before, err := s.sessions.Analysis(s.ctx, s.owner, id)
	s.Require().NoError(err)
	s.Equal(0, before.MishitCount)

	rows, err := s.sessions.Shots(s.ctx, s.owner, id)
	s.Require().NoError(err)

	mishit := true
	kind := "thin"
	shot, err := s.sessions.UpdateShot(s.ctx, s.owner, id, rows[0].ID, ShotUpdate{IsMishit: &mishit, MishitType: &kind})
	s.Require().NoError(err)
	s.True(shot.IsMishit)

	after, err := s.sessions.Analysis(s.ctx, s.owner, id)
	s.Require().NoError(err)
	s.Equal(1, after.MishitCount)
	s.Equal(2, after.ValidShotCount)

	session, err := s.sessions.Get(s.ctx, s.owner, id)
	s.Require().NoError(err)
	stored, ok := decodeStats(*session)
	s.Require().True(ok)
	s.Equal(1, stored.MishitCount)

	reset := false
	shot, err = s.sessions.UpdateShot(s.ctx, s.owner, id, rows[0].ID, ShotUpdate{IsMishit: &reset})
	s.Require().NoError(err)
	s.False(shot.IsMishit)
	s.Nil(shot.MishitType)

	_, err = s.sessions.UpdateShot(s.ctx, s.owner, id, uuid.New(), ShotUpdate{})
	s.ErrorIs(err, ErrShotNotFound)
}

func (s *ServicesTestSuite) TestDeleteRemovesChildren() {
	id := s.importSample()
	_, err := s.coach.GenerateReport(s.ctx, s.owner, id, "en")
	s.Require().NoError(err)

	s.Require().NoError(s.sessions.Delete(s.ctx, s.owner, id))

	var shotCount, reportCount int64
	s.db.Model(&models.Shot{}).Where("session_id = ?", id).Count(&shotCount)
	s.db.Model(&models.CoachReport{}).Where("session_id = ?", id).Count(&reportCount)
	s.Zero(shotCount)
	s.Zero(reportCount)

	_, err = s.sessions.Get(s.ctx, s.owner, id)
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *ServicesTestSuite) TestGenerateReportUsesSessionLog() {
	id := s.importSample()

	energy := 2
	log := &models.SessionLog{SessionID: &id, EnergyLevel: &energy, FeelTags: []byte(`["late"]`)}
	s.Require().NoError(s.coach.SaveLog(s.ctx, s.owner, log))

	report, err := s.coach.GenerateReport(s.ctx, s.owner, id, "en")
	s.Require().NoError(err)
	s.Equal("en", report.Language)
	s.Contains(report.Diagnosis, "Session contained 3 valid shots across 2 clubs.")
	s.Contains(report.Interpretation, "Low energy reported")
	s.Contains(report.Interpretation, "Late timing feel")
	s.NotEmpty(report.LinkedMetrics)

	stored, err := s.coach.GetReport(s.ctx, s.owner, report.ID)
	s.Require().NoError(err)
	s.Equal(report.Diagnosis, stored.Diagnosis)

	list, err := s.coach.ListReports(s.ctx, s.owner, &id)
	s.Require().NoError(err)
	s.Len(list, 1)

	_, err = s.coach.GetReport(s.ctx, uuid.New(), report.ID)
	s.ErrorIs(err, ErrReportNotFound)
}

func (s *ServicesTestSuite) TestGenerateReportLogsSessionContext() {
	id := s.importSample()

	hooked, hook := logtest.NewNullLogger()
	previous := applog.Logger
	applog.Logger = hooked
	defer func() { applog.Logger = previous }()

	report, err := s.coach.GenerateReport(s.ctx, s.owner, id, "en")
	s.Require().NoError(err)

	entry := hook.LastEntry()
	s.Require().NotNil(entry)
	s.Equal("Coach report generated", entry.Message)
	s.Equal(id.String(), entry.Data["session_id"])
	s.Equal(report.ID, entry.Data["report_id"])
}

func (s *ServicesTestSuite) TestGenerateReportUnknownLanguage() {
	id := s.importSample()
	report, err := s.coach.GenerateReport(s.ctx, s.owner, id, "xx")
	s.Require().NoError(err)
	s.Equal("en", report.Language)

	report, err = s.coach.GenerateReport(s.ctx, s.owner, id, "no")
	s.Require().NoError(err)
	s.Equal("no", report.Language)
	s.True(strings.HasPrefix(report.Interpretation, "Subjektive data"))
}

func (s *ServicesTestSuite) TestSaveLogValidation() {
	id := s.importSample()

	bad := 6
	err := s.coach.SaveLog(s.ctx, s.owner, &models.SessionLog{SessionID: &id, EnergyLevel: &bad})
	s.ErrorIs(err, ErrInvalidLog)

	err = s.coach.SaveLog(s.ctx, s.owner, &models.SessionLog{SessionID: &id, FeelTags: []byte(`{"a":1}`)})
	s.ErrorIs(err, ErrInvalidLog)

	err = s.coach.SaveLog(s.ctx, uuid.New(), &models.SessionLog{SessionID: &id})
	s.ErrorIs(err, ErrSessionNotFound)

	good := 4
	s.Require().NoError(s.coach.SaveLog(s.ctx, s.owner, &models.SessionLog{SessionID: &id, MentalState: &good}))

	got, err := s.coach.GetLog(s.ctx, s.owner, id)
	s.Require().NoError(err)
	s.Require().NotNil(got.MentalState)
	s.Equal(4, *got.MentalState)
}

func (s *ServicesTestSuite) TestChatFallsBackAndStoresBothTurns() {
	s.importSample()

	res, err := s.coach.Chat(s.ctx, s.owner, ChatInput{Content: "How do I fix my slice?"})
	s.Require().NoError(err)
	s.Equal(coach.ProviderRuleBased, res.Provider)
	s.Equal("assistant", res.Message.Role)
	s.Equal(coach.FallbackResponse("slice", "en"), res.Message.Content)

	history, err := s.coach.History(s.ctx, s.owner, 0)
	s.Require().NoError(err)
	s.Len(history, 2)

	_, err = s.coach.Chat(s.ctx, s.owner, ChatInput{Content: "   "})
	s.ErrorIs(err, ErrEmptyMessage)
}

func (s *ServicesTestSuite) TestChatPassesHistoryAndContextToProvider() {
	s.importSample()

	provider := new(MockProvider)
	provider.On("Name").Return("mock")
	provider.On("Generate", mock.Anything, mock.MatchedBy(func(req coach.Request) bool {
		return req.Message == "second" &&
			len(req.History) == 2 &&
			strings.Contains(req.Context, "Range day")
	})).Return("Keep going.", nil)
	provider.On("Generate", mock.Anything, mock.Anything).Return("First answer.", nil)

	log := quietLogger()
	svc := NewCoachService(s.db, coach.NewChain(log, provider), log, "en", 10)

	_, err := svc.Chat(s.ctx, s.owner, ChatInput{Content: "first"})
	s.Require().NoError(err)

	res, err := svc.Chat(s.ctx, s.owner, ChatInput{Content: "second"})
	s.Require().NoError(err)
	s.Equal("mock", res.Provider)
	s.Equal("Keep going.", res.Message.Content)
}

func (s *ServicesTestSuite) TestStatsRefresherFillsMissingStats() {
	id := s.importSample()
	s.Require().NoError(s.db.Model(&models.Session{}).Where("id = ?", id).Update("computed_stats", nil).Error)

	refresher := NewStatsRefresher(s.db, quietLogger(), "@every 1h")
	n, err := refresher.RefreshOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)

	session, err := s.sessions.Get(s.ctx, s.owner, id)
	s.Require().NoError(err)
	stats, ok := decodeStats(*session)
	s.Require().True(ok)
	s.Equal(3, stats.ShotCount)

	n, err = refresher.RefreshOnce(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
}

func TestServicesTestSuite(t *testing.T) {
	suite.Run(t, new(ServicesTestSuite))
}

func TestStatsRefresherLifecycle(t *testing.T) {
	refresher := NewStatsRefresher(newTestDB(t), quietLogger(), "@every 1h")

	require.NoError(t, refresher.Start())
	assert.Error(t, refresher.Start())
	assert.Equal(t, true, refresher.Status()["is_running"])

	refresher.Stop()
	assert.Equal(t, false, refresher.Status()["is_running"])
}

func TestStatsRefresherStopWaitsForRunningJob(t *testing.T) {
	db := newTestDB(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	var parked sync.Once
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:park_refresh", func(*gorm.DB) {
		parked.Do(func() {
			close(entered)
			<-release
		})
	}))

	refresher := NewStatsRefresher(db, quietLogger(), "@every 1s")
	require.NoError(t, refresher.Start())

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("refresh job never ran")
	}

	stopped := make(chan struct{})
	go func() {
		refresher.Stop()
		close(stopped)
	}()

	time.Sleep(100 * time.Millisecond)
	close(release)

	select {
	case <-stopped:
	case <-time.After(3 * time.Second):
		t.Fatal("Stop did not return after the running job finished")
	}
	assert.Equal(t, false, refresher.Status()["is_running"])
	assert.Equal(t, 0, refresher.Status()["last_count"])
}

func TestStatsRefresherRunsAfterRestart(t *testing.T) {
	db := newTestDB(t)
	owner := uuid.New()
	name := "Restarted"
	session := models.Session{OwnerID: owner, Name: &name, Source: "csv", SessionType: "range", SessionDate: time.Now()}
	require.NoError(t, db.Create(&session).Error)
	for i, carry := range []float64{150, 152, 149} {
		c := carry
		require.NoError(t, db.Create(&models.Shot{SessionID: session.ID, ShotNumber: i + 1, Club: "7 Iron", CarryDistance: &c}).Error)
	}

	refresher := NewStatsRefresher(db, quietLogger(), "@every 1s")
	require.NoError(t, refresher.Start())
	refresher.Stop()
	require.NoError(t, refresher.Start())
	defer refresher.Stop()

	assert.Eventually(t, func() bool {
		var stored models.Session
		if err := db.First(&stored, "id = ?", session.ID).Error; err != nil {
			return false
		}
		return len(stored.ComputedStats) > 0
	}, 5*time.Second, 50*time.Millisecond)
}

func TestStatsRefresherRejectsBadSchedule(t *testing.T) {
	refresher := NewStatsRefresher(newTestDB(t), quietLogger(), "not a schedule")
	assert.Error(t, refresher.Start())
}

func TestCacheServiceDisabled(t *testing.T) {
	cache := NewCacheService(nil)
	ctx := context.Background()

	assert.False(t, cache.Enabled())
	assert.NoError(t, cache.Set(ctx, "k", 1, time.Minute))
	var v int
	assert.ErrorIs(t, cache.Get(ctx, "k", &v), ErrCacheMiss)
	assert.NoError(t, cache.Delete(ctx, "k"))
}
