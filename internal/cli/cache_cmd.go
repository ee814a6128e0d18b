package cli

import (
	"fmt"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pronte/setwalk/pkg/cache"
)

// cacheDir returns the directory used by the file-based result cache.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("get user cache dir: %w", err)
	}
	return filepath.Join(base, "setwalk"), nil
}

// resultCache builds the cache used by the enumerate command. Caching
// problems degrade to a null cache with a warning; a broken cache must
// never break a run.
func resultCache(disabled bool, logger *charmlog.Logger) cache.Cache {
	if disabled {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return store
}

// openFileCache opens the result cache for management commands,
// reporting whether it existed at all.
func openFileCache() (*cache.FileCache, string, bool, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, "", false, err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, dir, false, nil
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, dir, false, err
	}
	return store, dir, true, nil
}

// newCacheCmd creates the cache management command.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCacheStatsCmd())
	cmd.AddCommand(newCachePathCmd())

	return cmd
}

// newCacheClearCmd creates the "cache clear" subcommand.
func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached enumeration results",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, dir, exists, err := openFileCache()
			if err != nil {
				return err
			}
			if !exists {
				printInfo("Cache is empty")
				return nil
			}

			removed, err := store.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached results", removed)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// newCacheStatsCmd creates the "cache stats" subcommand.
func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cached result count and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, dir, exists, err := openFileCache()
			if err != nil {
				return err
			}
			if !exists {
				printInfo("Cache is empty")
				return nil
			}

			entries, size, err := store.Stats()
			if err != nil {
				return fmt.Errorf("cache stats: %w", err)
			}

			printInfo("%d cached results (%d bytes)", entries, size)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// newCachePathCmd creates the "cache path" subcommand.
func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		},
	}
}
