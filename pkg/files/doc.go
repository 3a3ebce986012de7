// Package files implements the file service: upload validation, object
// naming, the filtered and sorted catalog, the access guard, and the
// Service that ties them to a storage bucket and URL signer.
//
// Ownership is never stored separately. Every object key starts with the
// uploader's subject id, and every authorization decision re-derives the
// owner from the key:
//
//	key := files.GenerateKey("uid-1", "report.txt") // "uid-1/<uuid>_report.txt"
//	owner, name := files.ParseKey(key)              // "uid-1", "<uuid>_report.txt"
//
// Admins may list and download every object but may only delete their own.
package files
