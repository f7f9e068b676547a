// Package extract identifies sales orders from stored emails.
//
// Each stored email is sent to a vision-capable chat model together with
// its attachment images and the product catalog images, and the model's
// structured response is repaired against the customer and item master
// data before it is persisted next to the email.
package extract
