// Package storetest はstore.Storeを使うコードのテスト用ヘルパーを提供します。
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stsysd/folio/model"
	"github.com/stsysd/folio/store"
)

// ErrInjected はFaultyが発生させるすべての失敗の原因です。
var ErrInjected = errors.New("injected failure")

// Faulty はStoreをラップし、指定された操作を失敗させます。
type Faulty struct {
	store.Store

	mu         sync.Mutex
	failLoad   bool
	failSave   bool
	failDelete bool
	saves      int
}

// NewFaulty はsをラップしたFaultyを作成します。
func NewFaulty(s store.Store) *Faulty {
	return &Faulty{Store: s}
}

// FailLoads は以降の読み込みを失敗させます。
func (f *Faulty) FailLoads(on bool) {
	f.mu.Lock()
	f.failLoad = on
	f.mu.Unlock()
}

// FailSaves は以降の保存を失敗させます。
func (f *Faulty) FailSaves(on bool) {
	f.mu.Lock()
	f.failSave = on
	f.mu.Unlock()
}

// FailDeletes は以降の削除を失敗させます。
func (f *Faulty) FailDeletes(on bool) {
	f.mu.Lock()
	f.failDelete = on
	f.mu.Unlock()
}

// Saves は成功した保存の回数を返します。
func (f *Faulty) Saves() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func (f *Faulty) Load(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	fail := f.failLoad
	f.mu.Unlock()
	if fail {
		return nil, false, &model.StorageError{Op: "load", Key: key, Err: ErrInjected}
	}
	return f.Store.Load(ctx, key)
}

func (f *Faulty) Save(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	fail := f.failSave
	f.mu.Unlock()
	if fail {
		return &model.StorageError{Op: "save", Key: key, Err: ErrInjected}
	}
	if err := f.Store.Save(ctx, key, value); err != nil {
		return err
	}
	f.mu.Lock()
	f.saves++
	f.mu.Unlock()
	return nil
}

func (f *Faulty) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.failDelete
	f.mu.Unlock()
	if fail {
		return &model.StorageError{Op: "delete", Key: key, Err: ErrInjected}
	}
	return f.Store.Delete(ctx, key)
}

// Contract はすべてのStore実装が満たすべき振る舞いを検証します。
func Contract(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		v, ok, err := s.Load(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("save and load", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, store.KeyTheme, []byte(`"dark"`)))
		v, ok, err := s.Load(ctx, store.KeyTheme)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `"dark"`, string(v))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, store.KeyTheme, []byte(`"light"`)))
		v, _, err := s.Load(ctx, store.KeyTheme)
		require.NoError(t, err)
		assert.Equal(t, `"light"`, string(v))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, store.KeySession, []byte(`{"isAdmin":true,"expires":1}`)))
		require.NoError(t, s.Delete(ctx, store.KeySession))
		_, ok, err := s.Load(ctx, store.KeySession)
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = s.Load(ctx, store.KeyTheme)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("delete absent key", func(t *testing.T) {
		assert.NoError(t, s.Delete(ctx, "never-written"))
	})

	t.Run("json helpers", func(t *testing.T) {
		in := []model.Project{{ID: 1, Title: "t", Description: "d", Technologies: []string{"Go"}}}
		require.NoError(t, store.SaveJSON(ctx, s, store.KeyProjects, in))

		var out []model.Project
		ok, err := store.LoadJSON(ctx, s, store.KeyProjects, &out)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, in[0].Title, out[0].Title)
		assert.Equal(t, in[0].Technologies, out[0].Technologies)
	})

	t.Run("malformed json", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, store.KeyCredential, []byte(`{not json`)))
		var v string
		ok, err := store.LoadJSON(ctx, s, store.KeyCredential, &v)
		assert.False(t, ok)
		require.Error(t, err)
		assert.True(t, model.IsStorage(err))
	})
}
