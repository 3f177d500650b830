package store

import "fmt"

// SplitLog 一次拆分请求的历史记录
type SplitLog struct {
	ID            int64  `json:"id"`
	JobID         string `json:"jobId"`
	Filename      string `json:"filename"`
	FileSize      int64  `json:"fileSize"`
	TotalSheets   int    `json:"totalSheets"`
	HiddenSheets  int    `json:"hiddenSheets"`
	ProducedFiles int    `json:"producedFiles"`
	FailedSheets  int    `json:"failedSheets"`
	Status        string `json:"status"` // success / partial / failed
	ErrorMessage  string `json:"errorMessage"`
	DurationMS    int64  `json:"durationMs"`
	CreatedAt     string `json:"createdAt"`
}

// RecordSplit 写入一条拆分历史
func (s *Store) RecordSplit(entry *SplitLog) error {
	_, err := s.db.Exec(`
		INSERT INTO split_logs (
			job_id, filename, file_size,
			total_sheets, hidden_sheets, produced_files, failed_sheets,
			status, error_message, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.JobID, entry.Filename, entry.FileSize,
		entry.TotalSheets, entry.HiddenSheets, entry.ProducedFiles, entry.FailedSheets,
		entry.Status, entry.ErrorMessage, entry.DurationMS)
	if err != nil {
		return fmt.Errorf("failed to record split log: %w", err)
	}
	return nil
}

// ListHistory 按时间倒序返回最近的拆分历史
func (s *Store) ListHistory(limit int) ([]*SplitLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, job_id, filename, file_size,
			total_sheets, hidden_sheets, produced_files, failed_sheets,
			status, error_message, duration_ms, created_at
		FROM split_logs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query split logs: %w", err)
	}
	defer rows.Close()

	var logs []*SplitLog
	for rows.Next() {
		entry := &SplitLog{}
		if err := rows.Scan(
			&entry.ID, &entry.JobID, &entry.Filename, &entry.FileSize,
			&entry.TotalSheets, &entry.HiddenSheets, &entry.ProducedFiles, &entry.FailedSheets,
			&entry.Status, &entry.ErrorMessage, &entry.DurationMS, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split log: %w", err)
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
