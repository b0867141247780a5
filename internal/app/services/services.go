package services

// Services defined in this package:
// - AuthService: Handles authentication, registration and profile access
// - InstitutionService: Handles institution setup and directory listing
// - LearnerService: Handles the learner register and admission reporting
// - AssetService: Handles the infrastructure asset register
// - BookService: Handles the book inventory
// - ReceiptService: Handles capitation receipt uploads and verification
// - DeceasedService: Handles deceased learner records
// - DashboardService: Aggregates per-institution summary figures
