/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* It has a primary key, chosen by the caller.
* It may possess one or more secondary indexes (1:1 or 1:N)
* Easy queries for one and iteration.

Secondary indexes are stored natively in the same KVStore, one entry per
(index value, primary key) pair, so lookups are plain prefix iterations.
*/
package orm
