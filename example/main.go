package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/theflywheel/dhash"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ht, err := dhash.New(dhash.WithLogger(logger))
	if err != nil {
		logger.Fatal("failed to create table", zap.Error(err))
	}
	defer ht.Destroy()

	// Insert some data
	for _, kv := range [][2]string{{"key", "val"}, {"key1", "val1"}, {"key2", "val2"}} {
		if err := ht.Insert(kv[0], kv[1]); err != nil {
			logger.Fatal("insert failed", zap.String("key", kv[0]), zap.Error(err))
		}
	}

	for _, k := range []string{"key", "key1", "key2"} {
		v, _ := ht.Search(k)
		fmt.Printf("%s => %s\n", k, v)
	}

	// Update a value
	if err := ht.Insert("key", "val1"); err != nil {
		logger.Fatal("update failed", zap.Error(err))
	}
	v, _ := ht.Search("key")
	fmt.Printf("Updated key => %s\n", v)

	// Delete a key
	if err := ht.Delete("key1"); err != nil {
		logger.Fatal("delete failed", zap.Error(err))
	}
	if _, ok := ht.Search("key1"); !ok {
		fmt.Println("key1 has been deleted")
	}

	// Grow past the load threshold to see the resize trace
	for i := 0; i < 100; i++ {
		if err := ht.Insert(fmt.Sprintf("bulk-%d", i), "x"); err != nil {
			logger.Fatal("insert failed", zap.Int("i", i), zap.Error(err))
		}
	}

	stats := ht.Stats()
	fmt.Printf("count=%d size=%d grows=%d tombstones=%d\n",
		stats.Count, stats.Size, stats.Grows, stats.Tombstones)
}
