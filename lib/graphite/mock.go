package graphite

type Stat struct {
	Path      string
	Timestamp int64
	Value     float64
}

type MockGraphite struct {
	Stats   []Stat
	Flushed bool
}

func (self *MockGraphite) Add(path string, timestamp int64, value float64) {
	self.Stats = append(self.Stats, Stat{path, timestamp, value})
}

func (self *MockGraphite) Flush() error {
	self.Flushed = true
	return nil
}
