// Package session 持有编辑会话的内存状态。
//
// 会话不做持久化：一次“上传课表 → 调整 → 导出”的编辑流程结束后状态即可丢弃。
// Store 级别的互斥锁保证所有修改在同一执行序列上串行进行，读取方拿到的
// 都是深拷贝快照，网格渲染和导出因此是对快照的纯函数。
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/Lounwb/AirCourse/internal/domain"
	"github.com/Lounwb/AirCourse/internal/utils"
)

var ErrNotFound = errors.New("会话不存在或已过期")

type entry struct {
	sess      *domain.Session
	expiresAt time.Time
}

type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*entry
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*entry),
	}
}

// Create 新建一个会话并返回其快照
func (s *Store) Create(program domain.ProgramConfig) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()

	sess := &domain.Session{
		ID:        utils.NewID(),
		Program:   program,
		Courses:   make([]domain.Course, 0),
		CreatedAt: time.Now(),
	}
	s.sessions[sess.ID] = &entry{
		sess:      sess,
		expiresAt: time.Now().Add(s.ttl),
	}

	return sess.Clone()
}

// Get 返回会话的深拷贝快照，并顺延过期时间
func (s *Store) Get(id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.getLocked(id)
	if err != nil {
		return nil, err
	}
	return e.sess.Clone(), nil
}

// Update 在锁内对会话执行一次修改操作，返回修改后的快照。
// fn 返回错误时修改视为未发生（调用方负责保证 fn 失败前不改动状态）。
func (s *Store) Update(id string, fn func(*domain.Session) error) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.getLocked(id)
	if err != nil {
		return nil, err
	}
	if err := fn(e.sess); err != nil {
		return nil, err
	}
	return e.sess.Clone(), nil
}

// NextAnalyzeToken 为新的识别请求分配一个单调递增的 token。
// 响应返回后通过 Update 比对 token 是否仍是最新，旧请求的结果被直接丢弃。
func (s *Store) NextAnalyzeToken(id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.getLocked(id)
	if err != nil {
		return 0, err
	}
	e.sess.AnalyzeToken++
	return e.sess.AnalyzeToken, nil
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Store) getLocked(id string) (*entry, error) {
	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(e.expiresAt) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	e.expiresAt = time.Now().Add(s.ttl)
	return e, nil
}

func (s *Store) purgeExpiredLocked() {
	now := time.Now()
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
