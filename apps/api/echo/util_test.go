package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	echoapi "github.com/tundavala/escola/apps/api/echo"
	"github.com/tundavala/escola/core"
	"github.com/tundavala/escola/core/contact"
	"github.com/tundavala/escola/core/tuition"
	"github.com/tundavala/escola/core/visit"
	logsvc "github.com/tundavala/escola/services/logger"
	inmemdb "github.com/tundavala/escola/storage/database/inmem"
)

// wednesday 2025-01-08 10:00 in Luanda
var testNow = time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) *echoapi.Server {
	t.Helper()

	visit.NowFunc = func() time.Time { return testNow }
	t.Cleanup(func() { visit.NowFunc = time.Now })

	conf := core.NewTestConfig()
	loc, err := time.LoadLocation(conf.School.Timezone)
	require.NoError(t, err)

	logger := logsvc.NewRollbarLogger(zap.NewNop(), conf)
	logger.Enable(false)

	validate := validator.New()
	translators := core.NewTranslators()
	core.InitValidators(validate, translators)

	db := inmemdb.Open()
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:        conf,
		Logger:      logger,
		ContactSvc:  contact.NewService(inmemdb.NewContactRepository(db)),
		TuitionSvc:  tuition.NewService(inmemdb.NewTuitionRepository(db)),
		VisitSvc:    visit.NewService(inmemdb.NewAppointmentRepository(db), loc),
		Validate:    validate,
		Translators: translators,
	})
}

func setNow(t *testing.T, at time.Time) {
	t.Helper()
	visit.NowFunc = func() time.Time { return at }
}

type httpErr struct {
	Error   string            `json:"error"`
	Details []core.FieldError `json:"details,omitempty"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	lang     string
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, server *echoapi.Server, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			if tt.lang != "" {
				req.Header.Set("Accept-Language", tt.lang)
			}
			server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// doJSON sends `body` and decodes the reply into `dest`.
func doJSON(t *testing.T, server *echoapi.Server, method, path string, body []byte, wantCode int, dest interface{}) {
	t.Helper()
	req, rec := newRequest(method, path, body)
	server.ServeHTTP(rec, req)
	require.Equal(t, wantCode, rec.Code, rec.Body.String())
	if dest != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
	}
}

func assertDecimal(t *testing.T, want float64, got json.Number, name string) {
	t.Helper()
	f, err := got.Float64()
	if assert.NoError(t, err, name) {
		assert.Equal(t, want, f, name)
	}
}
