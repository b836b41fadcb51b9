package app

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kaspanet/minichain/domain/chainstore"
	"github.com/kaspanet/minichain/infrastructure/config"
)

func prepareConfigForTest(t *testing.T, testName string, numBlocks uint64) (cfg *config.Config, teardownFunc func()) {
	dir, err := ioutil.TempDir("", testName)
	if err != nil {
		t.Fatalf("%s: TempDir unexpectedly failed: %s", testName, err)
	}
	cfg = &config.Config{Flags: &config.Flags{
		DataDir: filepath.Join(dir, "blockchain_db"),
		MiningFlags: config.MiningFlags{
			Difficulty:      2,
			NumBlocks:       numBlocks,
			MinTransactions: 1,
			MaxTransactions: 10,
		},
	}}
	return cfg, func() { os.RemoveAll(dir) }
}

func TestComponentManagerInteractive(t *testing.T) {
	testName := "TestComponentManagerInteractive"
	cfg, teardownFunc := prepareConfigForTest(t, testName, 0)
	defer teardownFunc()

	componentManager, err := NewComponentManager(cfg, strings.NewReader("1\n1\n0\n"), &bytes.Buffer{}, false)
	if err != nil {
		t.Fatalf("%s: NewComponentManager unexpectedly failed: %s", testName, err)
	}
	err = componentManager.Run(context.Background())
	if err != nil {
		t.Fatalf("%s: Run unexpectedly failed: %s", testName, err)
	}
	err = componentManager.Run(context.Background())
	if err == nil {
		t.Fatalf("%s: a second Run unexpectedly succeeded", testName)
	}
	err = componentManager.Stop()
	if err != nil {
		t.Fatalf("%s: Stop unexpectedly failed: %s", testName, err)
	}

	exists, err := checkDatabaseVersion(cfg.DataDir)
	if err != nil || !exists {
		t.Fatalf("%s: expected a valid version file, got exists=%t err=%v", testName, exists, err)
	}

	store, err := chainstore.Open(cfg.DataDir)
	if err != nil {
		t.Fatalf("%s: chainstore.Open unexpectedly failed: %s", testName, err)
	}
	defer store.Close()
	if store.LoadResult().Status != chainstore.LoadStatusLoaded {
		t.Fatalf("%s: expected the saved chain to be loaded, got %s", testName, store.LoadResult().Status)
	}
	if store.Chain().Len() != 3 {
		t.Fatalf("%s: expected 3 saved blocks, got %d", testName, store.Chain().Len())
	}
	if store.Chain().Difficulty() != 2 {
		t.Fatalf("%s: expected difficulty 2, got %d", testName, store.Chain().Difficulty())
	}
}

func TestComponentManagerBatch(t *testing.T) {
	testName := "TestComponentManagerBatch"
	cfg, teardownFunc := prepareConfigForTest(t, testName, 4)
	defer teardownFunc()

	for run := 1; run <= 2; run++ {
		componentManager, err := NewComponentManager(cfg, strings.NewReader(""), &bytes.Buffer{}, false)
		if err != nil {
			t.Fatalf("%s: NewComponentManager unexpectedly failed: %s", testName, err)
		}
		err = componentManager.Run(context.Background())
		if err != nil {
			t.Fatalf("%s: Run unexpectedly failed: %s", testName, err)
		}
		err = componentManager.Stop()
		if err != nil {
			t.Fatalf("%s: Stop unexpectedly failed: %s", testName, err)
		}
		// A second Stop is a no-op
		err = componentManager.Stop()
		if err != nil {
			t.Fatalf("%s: second Stop unexpectedly failed: %s", testName, err)
		}
	}

	store, err := chainstore.Open(cfg.DataDir)
	if err != nil {
		t.Fatalf("%s: chainstore.Open unexpectedly failed: %s", testName, err)
	}
	defer store.Close()
	if store.Chain().Len() != 9 {
		t.Fatalf("%s: expected genesis and 8 mined blocks, got %d", testName, store.Chain().Len())
	}
}

func TestComponentManagerBadDatabaseVersion(t *testing.T) {
	testName := "TestComponentManagerBadDatabaseVersion"
	cfg, teardownFunc := prepareConfigForTest(t, testName, 0)
	defer teardownFunc()

	err := os.MkdirAll(cfg.DataDir, 0700)
	if err != nil {
		t.Fatalf("%s: MkdirAll unexpectedly failed: %s", testName, err)
	}
	err = ioutil.WriteFile(versionFilePath(cfg.DataDir), []byte("99"), 0600)
	if err != nil {
		t.Fatalf("%s: WriteFile unexpectedly failed: %s", testName, err)
	}

	_, err = NewComponentManager(cfg, strings.NewReader(""), &bytes.Buffer{}, false)
	if err == nil {
		t.Fatalf("%s: NewComponentManager unexpectedly accepted database version 99", testName)
	}
}
