package settingstore

// WriteCount exposes the saver's completed-write counter to tests.
func (s *Store) WriteCount() int64 {
	return s.saver.writeCount()
}
