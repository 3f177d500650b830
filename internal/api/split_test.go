package api

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/IshanB-25/excel-splitter-service/internal/config"
	"github.com/IshanB-25/excel-splitter-service/internal/store"
)

func TestSplitExcel_SingleSheetReturnsXLSX(t *testing.T) {
	router := newTestRouter(t, config.DefaultConfig(), nil)

	data := buildWorkbook(t, func(f *excelize.File) error {
		if err := f.SetSheetName(f.GetSheetName(0), "Summary"); err != nil {
			return err
		}
		if err := f.SetCellValue("Summary", "A1", "营收"); err != nil {
			return err
		}
		if _, err := f.NewSheet("RawData"); err != nil {
			return err
		}
		return f.SetSheetVisible("RawData", false)
	})

	w := doUpload(t, router, "Report.xlsx", data)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != mimeXLSX {
		t.Fatalf("content-type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Report_Summary.xlsx") {
		t.Fatalf("content-disposition = %q", cd)
	}

	out, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("open response workbook: %v", err)
	}
	t.Cleanup(func() { _ = out.Close() })
	if n := len(out.GetSheetList()); n != 1 {
		t.Fatalf("response sheets = %d, want 1", n)
	}
	if v, _ := out.GetCellValue("Summary", "A1"); v != "营收" {
		t.Fatalf("A1 = %q", v)
	}
}

func TestSplitExcel_MultiSheetReturnsZip(t *testing.T) {
	router := newTestRouter(t, config.DefaultConfig(), nil)

	data := buildWorkbook(t, func(f *excelize.File) error {
		if err := f.SetSheetName(f.GetSheetName(0), "Q1"); err != nil {
			return err
		}
		for _, q := range []string{"Q2", "Q3"} {
			if _, err := f.NewSheet(q); err != nil {
				return err
			}
		}
		return nil
	})

	w := doUpload(t, router, "sales.xlsx", data)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != mimeZip {
		t.Fatalf("content-type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "sales_split.zip") {
		t.Fatalf("content-disposition = %q", cd)
	}

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	if err != nil {
		t.Fatalf("open response zip: %v", err)
	}
	want := []string{"sales_Q1.xlsx", "sales_Q2.xlsx", "sales_Q3.xlsx"}
	if len(zr.File) != len(want) {
		t.Fatalf("zip entries = %d, want %d", len(zr.File), len(want))
	}
	for i, f := range zr.File {
		if f.Name != want[i] {
			t.Fatalf("zip entry %d = %q, want %q", i, f.Name, want[i])
		}
	}
}

func TestSplitExcel_MissingFile(t *testing.T) {
	router := newTestRouter(t, config.DefaultConfig(), nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/split-excel", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSplitExcel_DisallowedExtension(t *testing.T) {
	router := newTestRouter(t, config.DefaultConfig(), nil)

	w := doUpload(t, router, "data.csv", []byte("a,b,c"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSplitExcel_GarbageContent(t *testing.T) {
	router := newTestRouter(t, config.DefaultConfig(), nil)

	w := doUpload(t, router, "junk.xlsx", []byte("不是电子表格"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "无效的 Excel 文件") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestSplitExcel_Oversized(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Limits.MaxFileSizeMB = 1
	router := newTestRouter(t, cfg, nil)

	w := doUpload(t, router, "big.xlsx", make([]byte, 1024*1024+1))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", w.Code)
	}
}

func TestSplitExcel_TooManySheets(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Limits.MaxSheets = 2
	router := newTestRouter(t, cfg, nil)

	data := buildWorkbook(t, func(f *excelize.File) error {
		for _, name := range []string{"S2", "S3"} {
			if _, err := f.NewSheet(name); err != nil {
				return err
			}
		}
		return nil
	})

	w := doUpload(t, router, "book.xlsx", data)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "上限") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestIndexAndHealth(t *testing.T) {
	router := newTestRouter(t, config.DefaultConfig(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET / status = %d", w.Code)
	}
	var info map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode index: %v", err)
	}
	if info["service"] != ServiceName || info["version"] != ServiceVersion {
		t.Fatalf("index = %v", info)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Fatalf("health body = %s", w.Body.String())
	}
}

func TestListHistory_NilStore(t *testing.T) {
	router := newTestRouter(t, config.DefaultConfig(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestListHistory_RecordsSplits(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "splitter.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	router := newTestRouter(t, config.DefaultConfig(), st)

	data := buildWorkbook(t, func(f *excelize.File) error {
		return f.SetCellValue(f.GetSheetName(0), "A1", 1)
	})
	if w := doUpload(t, router, "log_me.xlsx", data); w.Code != http.StatusOK {
		t.Fatalf("split status = %d", w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d", w.Code)
	}
	var resp struct {
		History []*store.SplitLog `json:"history"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(resp.History) != 1 {
		t.Fatalf("history = %d entries, want 1", len(resp.History))
	}
	entry := resp.History[0]
	if entry.Filename != "log_me.xlsx" || entry.Status != "success" || entry.ProducedFiles != 1 {
		t.Fatalf("history entry = %+v", entry)
	}
}

func newTestRouter(t *testing.T, cfg *config.AppConfig, st *store.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(cfg, st).RegisterRoutes(router)
	return router
}

func buildWorkbook(t *testing.T, fill func(f *excelize.File) error) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := fill(f); err != nil {
		t.Fatalf("prepare workbook: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func doUpload(t *testing.T, router *gin.Engine, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/split-excel", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
