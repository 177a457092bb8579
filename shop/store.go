package shop

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/system-defender/constants"
)

// storeFile is the on-disk layout, keyed by student code
type storeFile struct {
	Profiles map[string]storedProfile `yaml:"profiles"`
}

type storedProfile struct {
	StudentName string                       `yaml:"student_name"`
	Purchases   map[constants.ShopItemID]int `yaml:"purchases"`
}

// Store persists purchase levels in a YAML file
// Cookie balances are not stored: they derive from the looked-up total minus purchases
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store backed by path; the file is created on first save
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
}

// Load returns the profile for code with cookies set to totalCookies minus stored purchases
// A missing file or entry yields a fresh profile
func (s *Store) Load(code, name string, totalCookies int) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return nil, err
	}

	p := NewProfile(name, totalCookies)
	if stored, ok := file.Profiles[code]; ok {
		for id, level := range stored.Purchases {
			if _, known := constants.LookupShopItem(id); known && level > 0 {
				p.Purchases[id] = level
			}
		}
		p.Cookies = max(0, totalCookies-p.Spent())
	}
	return p, nil
}

// Save writes the purchase levels of p under code
func (s *Store) Save(code string, p *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return err
	}
	purchases := make(map[constants.ShopItemID]int, len(p.Purchases))
	for id, level := range p.Purchases {
		if level > 0 {
			purchases[id] = level
		}
	}
	file.Profiles[code] = storedProfile{StudentName: p.StudentName, Purchases: purchases}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create profile dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write profiles: %w", err)
	}
	return nil
}

// read loads the file; caller holds s.mu
func (s *Store) read() (storeFile, error) {
	file := storeFile{Profiles: make(map[string]storedProfile)}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return file, nil
		}
		return file, fmt.Errorf("read profiles: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("decode profiles: %w", err)
	}
	if file.Profiles == nil {
		file.Profiles = make(map[string]storedProfile)
	}
	return file, nil
}
