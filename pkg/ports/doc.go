/*
Package ports defines the driven ports (interfaces) of the recipe browser.

These interfaces decouple the core logic from external implementations, allowing
the loader and session manager to work with various recipe sources and storage backends.

# Key Interfaces

  - RecipeSource: Fetches the recipe collection (e.g., from the remote HTTP API).
  - StateStore: Persists and loads navigation state.
  - DistributedLocker: Provides distributed locking for concurrent session access.
*/
package ports
