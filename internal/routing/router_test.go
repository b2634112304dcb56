package routing

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fittrack-server/internal/config"
	"fittrack-server/internal/managers"
	"fittrack-server/internal/managers/mocks"
	"fittrack-server/internal/repositories"
)

const testSecret = "test-secret-0123456789"

func setupMocks(t *testing.T) (pgxmock.PgxPoolIface, managers.JWTMgr, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	poolMock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(poolMock.Close)

	databaseMgrMock := &mocks.MockDatabaseManager{}
	databaseMgrMock.On("GetPool").Return(poolMock)

	jwtMgr := managers.NewJWTManager(testSecret, 15*time.Minute)

	repos, err := repositories.New(config.StorageBackendPostgres, poolMock)
	require.NoError(t, err)

	router := InitRouter(databaseMgrMock, jwtMgr, repos)
	return poolMock, jwtMgr, router
}

func userToken(t *testing.T, jwtMgr managers.JWTMgr, userId int64, email string) string {
	token, err := jwtMgr.GenerateJWT(jwtMgr.GenerateClaims(userId, email))
	require.NoError(t, err)
	return token
}

func adminToken(t *testing.T, jwtMgr managers.JWTMgr) string {
	now := time.Now()
	token, err := jwtMgr.GenerateJWT(jwt.MapClaims{
		"user": "root",
		"iat":  now.Unix(),
		"exp":  now.Add(15 * time.Minute).Unix(),
	})
	require.NoError(t, err)
	return token
}

func expectGetCurrentUser(poolMock pgxmock.PgxPoolIface, userId int64, email, passwordHash string) {
	poolMock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1 AND email = $2")).
		WithArgs(userId, email).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_name", "email", "password"}).
			AddRow(userId, "testUser", email, passwordHash))
}

func TestMetadata(t *testing.T) {
	_, _, router := setupMocks(t)
	server := httptest.NewServer(router)
	defer server.Close()

	expect := httpexpect.Default(t, server.URL)
	response := expect.GET("/").Expect().Status(http.StatusOK)
	response.JSON().Object().Value("dto").Object().
		HasValue("apiName", "FitTrack Server").
		HasValue("apiVersion", "1.0.0")
}

func TestHealth(t *testing.T) {
	poolMock, _, router := setupMocks(t)
	server := httptest.NewServer(router)
	defer server.Close()

	poolMock.ExpectPing()

	expect := httpexpect.Default(t, server.URL)
	response := expect.GET("/health").Expect().Status(http.StatusOK)
	response.JSON().Object().HasValue("dto", "healthy")

	require.NoError(t, poolMock.ExpectationsWereMet())
}

func TestUserRegistration(t *testing.T) {
	testCases := []struct {
		name         string
		payload      map[string]interface{}
		status       int
		responseBody map[string]interface{}
		expectInsert bool
	}{
		{
			"ValidRegistration",
			map[string]interface{}{
				"userName": "testUser",
				"email":    "test@example.com",
				"password": "test.Password123",
			},
			http.StatusCreated,
			map[string]interface{}{"dto": "User has been created."},
			true,
		},
		{
			"ValidRegistrationWithoutUserName",
			map[string]interface{}{
				"email":    "test@example.com",
				"password": "test.Password123",
			},
			http.StatusCreated,
			map[string]interface{}{"dto": "User has been created."},
			true,
		},
		{
			"PasswordTooShort",
			map[string]interface{}{
				"userName": "testUser",
				"email":    "test@example.com",
				"password": "short",
			},
			http.StatusBadRequest,
			map[string]interface{}{
				"code":    "ERR-001",
				"message": "The request body is invalid. Please check the request body and try again.",
			},
			false,
		},
		{
			"InvalidEmail",
			map[string]interface{}{
				"userName": "testUser",
				"email":    "test@example@.com",
				"password": "test.Password123",
			},
			http.StatusBadRequest,
			map[string]interface{}{
				"code":    "ERR-001",
				"message": "The request body is invalid. Please check the request body and try again.",
			},
			false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			poolMock, _, router := setupMocks(t)
			server := httptest.NewServer(router)
			defer server.Close()

			if tc.expectInsert {
				userName, _ := tc.payload["userName"].(string)
				poolMock.ExpectQuery("INSERT INTO users").
					WithArgs(userName, tc.payload["email"], pgxmock.AnyArg()).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
			}

			expect := httpexpect.Default(t, server.URL)
			response := expect.POST("/user/register").WithJSON(tc.payload).Expect().Status(tc.status)
			response.JSON().IsEqual(tc.responseBody)

			require.NoError(t, poolMock.ExpectationsWereMet())
		})
	}
}

func TestUserRegistrationRejectsNonJSONBody(t *testing.T) {
	poolMock, _, router := setupMocks(t)
	server := httptest.NewServer(router)
	defer server.Close()

	expect := httpexpect.Default(t, server.URL)
	response := expect.POST("/user/register").
		WithHeader("Content-Type", "text/plain").
		WithText("not json").
		Expect().Status(http.StatusBadRequest)
	response.JSON().Object().HasValue("code", "ERR-001")

	require.NoError(t, poolMock.ExpectationsWereMet())
}

func TestUserLogin(t *testing.T) {
	password := "test.Password123"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		password string
		status   int
	}{
		{"ValidLogin", password, http.StatusOK},
		{"WrongPassword", "wrong.Password123", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			poolMock, jwtMgr, router := setupMocks(t)
			server := httptest.NewServer(router)
			defer server.Close()

			poolMock.ExpectQuery(regexp.QuoteMeta("ORDER BY id LIMIT 1")).
				WithArgs("test@example.com").
				WillReturnRows(pgxmock.NewRows([]string{"id", "user_name", "email", "password"}).
					AddRow(int64(1), "testUser", "test@example.com", string(hash)))

			expect := httpexpect.Default(t, server.URL)
			response := expect.POST("/user/login").WithJSON(map[string]interface{}{
				"email":    "test@example.com",
				"password": tc.password,
			}).Expect().Status(tc.status)

			if tc.status == http.StatusOK {
				token := response.JSON().Object().Value("dto").String().NotEmpty().Raw()

				claims, err := jwtMgr.ValidateJWT(token)
				require.NoError(t, err)
				require.Equal(t, float64(1), claims["id"])
				require.Equal(t, "test@example.com", claims["email"])
			} else {
				response.JSON().Object().HasValue("code", "ERR-002")
			}

			require.NoError(t, poolMock.ExpectationsWereMet())
		})
	}
}

func TestUserLoginUnknownEmail(t *testing.T) {
	poolMock, _, router := setupMocks(t)
	server := httptest.NewServer(router)
	defer server.Close()

	poolMock.ExpectQuery(regexp.QuoteMeta("ORDER BY id LIMIT 1")).
		WithArgs("nobody@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_name", "email", "password"}))

	expect := httpexpect.Default(t, server.URL)
	response := expect.POST("/user/login").WithJSON(map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "test.Password123",
	}).Expect().Status(http.StatusUnauthorized)
	response.JSON().Object().HasValue("code", "ERR-002")

	require.NoError(t, poolMock.ExpectationsWereMet())
}

func TestGetAllUsersGate(t *testing.T) {
	testCases := []struct {
		name      string
		withToken func(t *testing.T, jwtMgr managers.JWTMgr) string
		status    int
	}{
		{
			"NoToken",
			func(*testing.T, managers.JWTMgr) string { return "" },
			http.StatusUnauthorized,
		},
		{
			"OrdinaryUserToken",
			func(t *testing.T, jwtMgr managers.JWTMgr) string {
				return userToken(t, jwtMgr, 1, "test@example.com")
			},
			http.StatusUnauthorized,
		},
		{
			"AdminToken",
			adminToken,
			http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			poolMock, jwtMgr, router := setupMocks(t)
			server := httptest.NewServer(router)
			defer server.Close()

			if tc.status == http.StatusOK {
				poolMock.ExpectQuery("FROM users ORDER BY id").
					WillReturnRows(pgxmock.NewRows([]string{"id", "user_name", "email", "password"}).
						AddRow(int64(1), "testUser", "test@example.com", "hash-1").
						AddRow(int64(2), "", "second@example.com", "hash-2"))
			}

			expect := httpexpect.Default(t, server.URL)
			request := expect.GET("/users")
			if token := tc.withToken(t, jwtMgr); token != "" {
				request = request.WithHeader("Authorization", "Bearer "+token)
			}
			response := request.Expect().Status(tc.status)

			if tc.status == http.StatusOK {
				users := response.JSON().Object().Value("dto").Array()
				users.Length().IsEqual(2)
				users.Value(0).Object().
					HasValue("id", 1).
					HasValue("userName", "testUser").
					HasValue("email", "test@example.com").
					NotContainsKey("password")
				users.Value(1).Object().NotContainsKey("userName")
			}

			require.NoError(t, poolMock.ExpectationsWereMet())
		})
	}
}

func TestActivityRoutesRequireToken(t *testing.T) {
	poolMock, _, router := setupMocks(t)
	server := httptest.NewServer(router)
	defer server.Close()

	expect := httpexpect.Default(t, server.URL)
	response := expect.GET("/activities").Expect().Status(http.StatusUnauthorized)
	response.JSON().Object().HasValue("code", "ERR-002")

	require.NoError(t, poolMock.ExpectationsWereMet())
}

func TestActivityLifecycle(t *testing.T) {
	poolMock, jwtMgr, router := setupMocks(t)
	server := httptest.NewServer(router)
	defer server.Close()

	token := userToken(t, jwtMgr, 1, "test@example.com")
	expect := httpexpect.Default(t, server.URL).Builder(func(req *httpexpect.Request) {
		req.WithHeader("Authorization", "Bearer "+token)
	})

	// Empty list before anything is recorded
	poolMock.ExpectQuery(regexp.QuoteMeta("FROM activities WHERE user_id = $1 ORDER BY id")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "type", "description", "duration", "date_time", "location", "user_id"}))

	expect.GET("/activities").Expect().Status(http.StatusOK).
		JSON().Object().Value("dto").Array().IsEmpty()

	// Create
	expectGetCurrentUser(poolMock, 1, "test@example.com", "hash")
	poolMock.ExpectQuery("INSERT INTO activities").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), 30, pgxmock.AnyArg(), pgxmock.AnyArg(), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))

	created := expect.POST("/activities").WithJSON(map[string]interface{}{
		"type":     "jogging",
		"duration": 30,
		"dateTime": "2024-01-30T20:17:09Z",
		"location": "park",
	}).Expect().Status(http.StatusCreated).JSON().Object().Value("dto").Object()
	created.
		HasValue("id", 5).
		HasValue("type", "jogging").
		HasValue("duration", 30).
		HasValue("dateTime", "2024-01-30T20:17:09Z").
		HasValue("location", "park").
		HasValue("user", 1)

	// Read back
	dateTime := time.Date(2024, 1, 30, 20, 17, 9, 0, time.UTC)
	poolMock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND user_id = $2")).
		WithArgs(int64(5), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "type", "description", "duration", "date_time", "location", "user_id"}).
			AddRow(int64(5), "jogging", nil, 30, dateTime, "park", int64(1)))

	expect.GET("/activities/5").Expect().Status(http.StatusOK).
		JSON().Object().Value("dto").Object().HasValue("id", 5)

	// Unknown id
	poolMock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND user_id = $2")).
		WithArgs(int64(99), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "type", "description", "duration", "date_time", "location", "user_id"}))

	expect.GET("/activities/99").Expect().Status(http.StatusNotFound).
		JSON().Object().HasValue("code", "ERR-003")

	// Partial update
	expectGetCurrentUser(poolMock, 1, "test@example.com", "hash")
	poolMock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM activities WHERE id = $1 AND user_id = $2")).
		WithArgs(int64(5), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))
	poolMock.ExpectExec(regexp.QuoteMeta("UPDATE activities SET duration = $1")).
		WithArgs(45, int64(5), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	expect.PATCH("/activities/5").WithJSON(map[string]interface{}{"duration": 45}).
		Expect().Status(http.StatusOK).
		JSON().Object().HasValue("dto", true)

	// Delete
	poolMock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND user_id = $2")).
		WithArgs(int64(5), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "type", "description", "duration", "date_time", "location", "user_id"}).
			AddRow(int64(5), "jogging", nil, 45, dateTime, "park", int64(1)))
	poolMock.ExpectExec(regexp.QuoteMeta("DELETE FROM activities WHERE id = $1 AND user_id = $2")).
		WithArgs(int64(5), int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	expect.DELETE("/activities/5").Expect().Status(http.StatusOK).
		JSON().Object().HasValue("dto", true)

	require.NoError(t, poolMock.ExpectationsWereMet())
}

func TestActivityFilterRoutes(t *testing.T) {
	poolMock, jwtMgr, router := setupMocks(t)
	server := httptest.NewServer(router)
	defer server.Close()

	token := userToken(t, jwtMgr, 1, "test@example.com")
	expect := httpexpect.Default(t, server.URL).Builder(func(req *httpexpect.Request) {
		req.WithHeader("Authorization", "Bearer "+token)
	})

	dateTime := time.Date(2024, 1, 30, 20, 17, 9, 0, time.UTC)

	// By type
	poolMock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND type = $2 ORDER BY id")).
		WithArgs(int64(1), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "type", "description", "duration", "date_time", "location", "user_id"}).
			AddRow(int64(3), "yoga", nil, 60, dateTime, nil, int64(1)))

	byType := expect.GET("/activities/type/yoga").Expect().Status(http.StatusOK).
		JSON().Object().Value("dto").Array()
	byType.Length().IsEqual(1)
	byType.Value(0).Object().HasValue("type", "yoga")

	// Unsupported type
	expect.GET("/activities/type/swimming").Expect().Status(http.StatusBadRequest).
		JSON().Object().HasValue("code", "ERR-001")

	// Last n
	poolMock.ExpectQuery(regexp.QuoteMeta("ORDER BY id DESC LIMIT $2")).
		WithArgs(int64(1), 2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "type", "description", "duration", "date_time", "location", "user_id"}).
			AddRow(int64(9), "walking", nil, 20, dateTime, nil, int64(1)).
			AddRow(int64(8), "yoga", nil, 45, dateTime, nil, int64(1)))

	lastTwo := expect.GET("/activities/len/2").Expect().Status(http.StatusOK).
		JSON().Object().Value("dto").Array()
	lastTwo.Length().IsEqual(2)
	lastTwo.Value(0).Object().HasValue("id", 9)

	// Last n of one type
	poolMock.ExpectQuery(regexp.QuoteMeta("ORDER BY id DESC LIMIT $3")).
		WithArgs(int64(1), pgxmock.AnyArg(), 2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "type", "description", "duration", "date_time", "location", "user_id"}).
			AddRow(int64(8), "yoga", nil, 45, dateTime, nil, int64(1)))

	lastYoga := expect.GET("/activities/len/yoga/2").Expect().Status(http.StatusOK).
		JSON().Object().Value("dto").Array()
	lastYoga.Length().IsEqual(1)

	// Amount must be a positive number
	expect.GET("/activities/len/zero").Expect().Status(http.StatusBadRequest).
		JSON().Object().HasValue("code", "ERR-001")

	require.NoError(t, poolMock.ExpectationsWereMet())
}
