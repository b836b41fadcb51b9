package ldb

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/kaspanet/minichain/infrastructure/db/database"
)

func prepareDatabaseForTest(t *testing.T, testName string) (ldb *LevelDB, path string, teardownFunc func()) {
	// Create a temp db to run tests against
	path, err := ioutil.TempDir("", testName)
	if err != nil {
		t.Fatalf("%s: TempDir unexpectedly "+
			"failed: %s", testName, err)
	}
	ldb, err = NewLevelDB(path)
	if err != nil {
		t.Fatalf("%s: NewLevelDB unexpectedly "+
			"failed: %s", testName, err)
	}
	teardownFunc = func() {
		err = ldb.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly "+
				"failed: %s", testName, err)
		}
		os.RemoveAll(path)
	}
	return ldb, path, teardownFunc
}

func TestLevelDBSanity(t *testing.T) {
	ldb, _, teardownFunc := prepareDatabaseForTest(t, "TestLevelDBSanity")
	defer teardownFunc()

	// Put something into the db
	key := database.MakeBucket([]byte("chain")).Key([]byte("snapshot"))
	putData := []byte("Hello world!")
	err := ldb.Put(key, putData)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Put returned "+
			"unexpected error: %s", err)
	}

	// Get from the key previously put to
	getData, err := ldb.Get(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Get returned "+
			"unexpected error: %s", err)
	}

	// Make sure that the put data and the get data are equal
	if !bytes.Equal(getData, putData) {
		t.Fatalf("TestLevelDBSanity: get data and "+
			"put data are not equal. Put: %s, got: %s",
			string(putData), string(getData))
	}

	// Overwrite and make sure only the new value is returned
	overwriteData := []byte("Goodbye")
	err = ldb.Put(key, overwriteData)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Put returned "+
			"unexpected error: %s", err)
	}
	getData, err = ldb.Get(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Get returned "+
			"unexpected error: %s", err)
	}
	if !bytes.Equal(getData, overwriteData) {
		t.Fatalf("TestLevelDBSanity: overwrite was lost. "+
			"Want: %s, got: %s", string(overwriteData), string(getData))
	}
}

func TestLevelDBNotFound(t *testing.T) {
	ldb, _, teardownFunc := prepareDatabaseForTest(t, "TestLevelDBNotFound")
	defer teardownFunc()

	key := database.MakeBucket([]byte("chain")).Key([]byte("missing"))
	_, err := ldb.Get(key)
	if !database.IsNotFoundError(err) {
		t.Fatalf("TestLevelDBNotFound: Get returned "+
			"wrong error: %v", err)
	}

	exists, err := ldb.Has(key)
	if err != nil {
		t.Fatalf("TestLevelDBNotFound: Has returned "+
			"unexpected error: %s", err)
	}
	if exists {
		t.Fatalf("TestLevelDBNotFound: Has " +
			"unexpectedly returned true")
	}

	// Deleting a missing key isn't an error
	err = ldb.Delete(key)
	if err != nil {
		t.Fatalf("TestLevelDBNotFound: Delete returned "+
			"unexpected error: %s", err)
	}
}

func TestLevelDBDelete(t *testing.T) {
	ldb, _, teardownFunc := prepareDatabaseForTest(t, "TestLevelDBDelete")
	defer teardownFunc()

	key := database.MakeBucket([]byte("chain")).Key([]byte("snapshot"))
	err := ldb.Put(key, []byte("value"))
	if err != nil {
		t.Fatalf("TestLevelDBDelete: Put returned "+
			"unexpected error: %s", err)
	}
	err = ldb.Delete(key)
	if err != nil {
		t.Fatalf("TestLevelDBDelete: Delete returned "+
			"unexpected error: %s", err)
	}
	exists, err := ldb.Has(key)
	if err != nil {
		t.Fatalf("TestLevelDBDelete: Has returned "+
			"unexpected error: %s", err)
	}
	if exists {
		t.Fatalf("TestLevelDBDelete: key " +
			"unexpectedly exists after Delete")
	}
}

func TestLevelDBReopen(t *testing.T) {
	ldb, path, _ := prepareDatabaseForTest(t, "TestLevelDBReopen")
	defer os.RemoveAll(path)

	key := database.MakeBucket([]byte("chain")).Key([]byte("snapshot"))
	err := ldb.Put(key, []byte("persisted"))
	if err != nil {
		t.Fatalf("TestLevelDBReopen: Put returned "+
			"unexpected error: %s", err)
	}
	err = ldb.Close()
	if err != nil {
		t.Fatalf("TestLevelDBReopen: Close returned "+
			"unexpected error: %s", err)
	}

	reopened, err := NewLevelDB(path)
	if err != nil {
		t.Fatalf("TestLevelDBReopen: NewLevelDB returned "+
			"unexpected error: %s", err)
	}
	defer reopened.Close()

	getData, err := reopened.Get(key)
	if err != nil {
		t.Fatalf("TestLevelDBReopen: Get returned "+
			"unexpected error: %s", err)
	}
	if string(getData) != "persisted" {
		t.Fatalf("TestLevelDBReopen: unexpected "+
			"value after reopen: %s", string(getData))
	}
}

func TestNewLevelDBInvalidPath(t *testing.T) {
	dir, err := ioutil.TempDir("", "TestNewLevelDBInvalidPath")
	if err != nil {
		t.Fatalf("TestNewLevelDBInvalidPath: TempDir unexpectedly "+
			"failed: %s", err)
	}
	defer os.RemoveAll(dir)

	// A regular file where the database directory's parent should be
	filePath := filepath.Join(dir, "file")
	err = ioutil.WriteFile(filePath, []byte("not a directory"), 0600)
	if err != nil {
		t.Fatalf("TestNewLevelDBInvalidPath: WriteFile unexpectedly "+
			"failed: %s", err)
	}

	_, err = NewLevelDB(filepath.Join(filePath, "db"))
	if err == nil {
		t.Fatalf("TestNewLevelDBInvalidPath: NewLevelDB " +
			"unexpectedly succeeded")
	}
}
