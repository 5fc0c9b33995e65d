/*
Package domain contains the core models of the recipe browser.

It defines the recipes fetched from the remote API, the steps a user walks
through, and the navigation state that survives suspension. This package is
kept pure and free of external dependencies like I/O or persistence.

# Key Entities

  - Recipe: A named dish with ingredients and an ordered list of steps.
  - Step: One instruction, with optional video and thumbnail references.
  - NavigationState: The position within a step sequence (Steps + CurrentIndex).
  - FailureKind: The user-facing category of a failed recipe fetch.
*/
package domain
