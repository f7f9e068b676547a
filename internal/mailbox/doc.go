// Package mailbox persists fetched emails and pipeline results on disk.
//
// Layout, one folder per fetched message:
//
//	emails/
//	  email_20260830_101502.000001/
//	    content.json
//	    attachments/
//	      chair.jpg
//	    identified_order.json   (written by the extraction stage)
//	    bc_response.json        (written by the posting stage)
//
// The store is reset at the start of each fetch run so each pipeline pass
// operates on a clean snapshot of the inbox.
package mailbox
