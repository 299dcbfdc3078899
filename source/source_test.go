package source

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pierrec/lz4"
	"github.com/pivolan/argo_explorer/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sampleCSV = "Float ID,Temperature,date\n2901234,20.1,2024-01-05\n2901235,bad,2024-01-06\n"

var sampleColumns = []models.Column{
	{Key: models.KeyFloatID, Type: models.TypeString},
	{Key: models.KeyTemperature, Type: models.TypeNumber},
	{Key: models.KeyDate, Type: models.TypeTimestamp},
}

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestDecompress(t *testing.T) {
	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, _ = gw.Write([]byte(sampleCSV))
	require.NoError(t, gw.Close())

	var lz bytes.Buffer
	lw := lz4.NewWriter(&lz)
	_, _ = lw.Write([]byte(sampleCSV))
	require.NoError(t, lw.Close())

	var zipped bytes.Buffer
	zw := zip.NewWriter(&zipped)
	small, _ := zw.Create("readme.txt")
	_, _ = small.Write([]byte("x"))
	big, _ := zw.Create("data/floats.csv")
	_, _ = big.Write([]byte(sampleCSV))
	require.NoError(t, zw.Close())

	cases := []struct {
		file string
		data []byte
		name string
	}{
		{"floats.csv.gz", gz.Bytes(), "floats.csv"},
		{"floats.csv.lz4", lz.Bytes(), "floats.csv"},
		{"bundle.zip", zipped.Bytes(), "floats.csv"},
		{"floats.csv", []byte(sampleCSV), "floats.csv"},
	}
	for _, tc := range cases {
		t.Run(tc.file, func(t *testing.T) {
			name, r, err := Decompress(tc.file, tc.data, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.name, name)
			assert.Equal(t, sampleCSV, readAll(t, r))
		})
	}
}

func TestDecompressEmptyZip(t *testing.T) {
	var zipped bytes.Buffer
	require.NoError(t, zip.NewWriter(&zipped).Close())
	_, _, err := Decompress("empty.zip", zipped.Bytes(), 0)
	assert.ErrorIs(t, err, ErrEmptyArchive)
}

func TestDecompressSizeLimit(t *testing.T) {
	payload := bytes.Repeat([]byte("2901234,Indian Ocean,20.1\n"), 100)

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, _ = gw.Write(payload)
	require.NoError(t, gw.Close())

	var lz bytes.Buffer
	lw := lz4.NewWriter(&lz)
	_, _ = lw.Write(payload)
	require.NoError(t, lw.Close())

	for file, data := range map[string][]byte{"big.csv.gz": gz.Bytes(), "big.csv.lz4": lz.Bytes()} {
		_, r, err := Decompress(file, data, 100)
		require.NoError(t, err)
		_, err = io.ReadAll(r)
		assert.ErrorIs(t, err, ErrTooLarge, file)

		_, r, err = Decompress(file, data, int64(len(payload)))
		require.NoError(t, err)
		out, err := io.ReadAll(r)
		require.NoError(t, err, file)
		assert.Len(t, out, len(payload))
	}

	var zipped bytes.Buffer
	zw := zip.NewWriter(&zipped)
	f, _ := zw.Create("big.csv")
	_, _ = f.Write(payload)
	require.NoError(t, zw.Close())
	_, _, err := Decompress("big.zip", zipped.Bytes(), 100)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, r, err := Decompress("big.csv.gz", gz.Bytes(), 100)
	require.NoError(t, err)
	_, err = LoadCSV(r, "big.csv", models.ArgoColumns())
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestReadAllCapped(t *testing.T) {
	data, err := ReadAllCapped(strings.NewReader("abcd"), 4)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(data))

	_, err = ReadAllCapped(strings.NewReader("abcde"), 4)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestAnalyzeHeaders(t *testing.T) {
	a := AnalyzeHeaders([]string{"Float ID", "temperature", "Temperature", "2024-01-05"})
	require.NotNil(t, a)
	assert.False(t, a.FirstRowIsData)
	assert.Equal(t, []string{"floatid", "temperature", "temperature_1", "column_4"}, a.Headers)

	a = AnalyzeHeaders([]string{"2901234", "20.1", "2024-01-05"})
	assert.True(t, a.FirstRowIsData)
	assert.Equal(t, []string{"column_1", "column_2", "column_3"}, a.Headers)

	assert.Nil(t, AnalyzeHeaders(nil))
}

func TestLoadCSV(t *testing.T) {
	ds, err := LoadCSV(strings.NewReader(sampleCSV), "sample", sampleColumns)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.NotEmpty(t, ds.ID)

	first := ds.Records[0]
	assert.Equal(t, models.RecordID("1"), first.ID)
	assert.Equal(t, 20.1, first.Get(models.KeyTemperature).Num)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), first.Get(models.KeyDate).Time)

	bad := ds.Records[1].Get(models.KeyTemperature)
	assert.False(t, bad.Valid())
	assert.Equal(t, "bad", bad.String())
}

func TestLoadCSVIDColumn(t *testing.T) {
	in := "id,floatId,temperature,date\nr7,A,1,2024-01-01\nr7,B,2,2024-01-02\n"
	ds, err := LoadCSV(strings.NewReader(in), "ids", sampleColumns)
	require.NoError(t, err)
	assert.Equal(t, models.RecordID("r7"), ds.Records[0].ID)
	assert.Equal(t, models.RecordID("r7#2"), ds.Records[1].ID)
}

func TestLoadCSVHeaderless(t *testing.T) {
	ds, err := LoadCSV(strings.NewReader("A,1.5,2024-01-01\nB,2.5,2024-01-02"), "raw", sampleColumns)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "A", ds.Records[0].Get(models.KeyFloatID).String())
}

func TestLoadCSVErrors(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""), "empty", sampleColumns)
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = LoadCSV(strings.NewReader("floatId,date\nA,2024-01-01"), "short", sampleColumns)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestLoadTable(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `floatId`, `temperature`, `date` FROM argo LIMIT 100")).
		WillReturnRows(sqlmock.NewRows([]string{"floatId", "temperature", "date"}).
			AddRow("2901234", 20.5, "2024-01-05").
			AddRow("2901235", nil, "2024-01-06"))

	ds, err := LoadTable(db, "argo", sampleColumns, 100)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "argo", ds.Name)
	assert.Equal(t, 20.5, ds.Records[0].Get(models.KeyTemperature).Num)
	assert.False(t, ds.Records[1].Get(models.KeyTemperature).Valid())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadTableDescribes(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("DESCRIBE TABLE floats")).
		WillReturnRows(sqlmock.NewRows([]string{"name", "type"}).
			AddRow("floatId", "String").
			AddRow("depth_m", "Float64").
			AddRow("taken", "DateTime64"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `floatId`, `depth_m`, `taken` FROM floats")).
		WillReturnRows(sqlmock.NewRows([]string{"floatId", "depth_m", "taken"}).
			AddRow("A", 10.0, "2024-01-05 10:00:00"))

	ds, err := LoadTable(db, "floats", nil, 0)
	require.NoError(t, err)
	require.Len(t, ds.Columns, 3)
	assert.Equal(t, "Float ID", ds.Columns[0].Label)
	assert.Equal(t, models.TypeNumber, ds.Columns[1].Type)
	assert.Equal(t, models.TypeTimestamp, ds.Columns[2].Type)
	assert.True(t, ds.Records[0].Get("taken").Valid())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadTableRejectsName(t *testing.T) {
	db, _ := newMockDB(t)
	_, err := LoadTable(db, "argo; DROP TABLE x", sampleColumns, 0)
	assert.ErrorIs(t, err, ErrBadTableName)
}

func TestSyntheticDeterministic(t *testing.T) {
	until := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	a, b := Synthetic(7, until), Synthetic(7, until)
	require.Equal(t, a.Len(), b.Len())
	assert.NotEqual(t, a.ID, b.ID)
	for i := range a.Records {
		assert.Equal(t, a.Records[i].ID, b.Records[i].ID)
		assert.Equal(t, a.Records[i].Get(models.KeyTemperature), b.Records[i].Get(models.KeyTemperature))
	}
	assert.GreaterOrEqual(t, a.Len(), 5*len(floatSites))
	assert.LessOrEqual(t, a.Len(), 10*len(floatSites))
	assert.Equal(t, "2024-03-01", a.Records[0].Get(models.KeyDate).String())
}

func TestSyntheticProfiles(t *testing.T) {
	ds := SyntheticProfiles(1, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, len(floatSites)*2000/ProfileDepthStep, ds.Len())
	surface := ds.Records[0].Get(models.KeyTemperature).Num
	deep := ds.Records[2000/ProfileDepthStep-1].Get(models.KeyTemperature).Num
	assert.Greater(t, surface, deep)
}
