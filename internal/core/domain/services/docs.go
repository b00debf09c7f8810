// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the shop system. It implements business
// decisions that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - BranchAllocator: A domain service for choosing the branch that fulfills a
//     requested variant quantity
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
