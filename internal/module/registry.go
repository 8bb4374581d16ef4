package module

import (
	"fmt"
	"sync"
)

// Registry 管理计算模块的注册和查找
type Registry struct {
	modules map[string]Module
	mu      sync.RWMutex
}

// NewRegistry 创建一个新的模块注册表
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]Module),
	}
}

// Register registers a module for its stage. Registering a second module for
// the same stage is an error.
func (r *Registry) Register(m Module) error {
	if m == nil {
		return fmt.Errorf("cannot register nil module")
	}

	stage := m.Stage()
	if stage == "" {
		return fmt.Errorf("module stage cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[stage]; exists {
		return fmt.Errorf("module already registered for stage: %s", stage)
	}

	r.modules[stage] = m
	return nil
}

// MustRegister registers a module and panics on error.
func (r *Registry) MustRegister(m Module) {
	if err := r.Register(m); err != nil {
		panic(err)
	}
}

// Unregister removes the module for a stage.
func (r *Registry) Unregister(stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.modules, stage)
}

// Get returns the module for a stage, or nil when none is registered.
func (r *Registry) Get(stage string) Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.modules[stage]
}

// GetOrError returns the module for a stage or a MODULE_NOT_FOUND error.
func (r *Registry) GetOrError(stage string) (Module, error) {
	m := r.Get(stage)
	if m == nil {
		return nil, NewNotFoundError(stage)
	}
	return m, nil
}

// Has 检查给定阶段是否已注册模块
func (r *Registry) Has(stage string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.modules[stage]
	return exists
}

// Stages returns all registered stage identifiers.
func (r *Registry) Stages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stages := make([]string, 0, len(r.modules))
	for s := range r.modules {
		stages = append(stages, s)
	}
	return stages
}

// Count 返回已注册模块的数量
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.modules)
}
