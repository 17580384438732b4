package database

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/CauanS29/DataPlane/core/common"
	"github.com/CauanS29/DataPlane/core/logger"
)

// parseOrder extrai a ordem de ordenação da tag (1 ou -1)
func parseOrder(tag string) int {
	if strings.Contains(tag, "order:-1") {
		return -1
	}
	return 1
}

// parseIndexTag separa as configurações da tag index.
// Formato: `index:"single"`, `index:"unique"`, `index:"compound:geo_idx"`,
// combináveis com ';' (ex: `index:"single;compound:geo_idx"`).
func parseIndexTag(tag string) []map[string]string {
	parts := strings.Split(tag, ";")
	result := []map[string]string{}

	for _, part := range parts {
		subParts := strings.Split(part, ",")
		entry := map[string]string{}
		for _, subPart := range subParts {
			kv := strings.Split(subPart, ":")
			if len(kv) == 2 {
				entry[kv[0]] = kv[1]
			} else {
				entry[kv[0]] = ""
			}
		}
		result = append(result, entry)
	}

	return result
}

// compareIndex compara um índice existente com a definição desejada (chaves + unique)
func compareIndex(existingIndex bson.M, keys bson.D, opts *options.IndexOptions) bool {
	existingKeys, ok := existingIndex["key"].(bson.M)
	if !ok {
		return false
	}

	for _, key := range keys {
		existingValue, exists := existingKeys[key.Key]
		if !exists {
			return false
		}

		newVal, isInt := key.Value.(int)
		if !isInt {
			if existingValue != key.Value {
				return false
			}
			continue
		}
		// O servidor devolve int32/int64/float64 dependendo da versão
		switch ev := existingValue.(type) {
		case int32:
			if int(ev) != newVal {
				return false
			}
		case int64:
			if int(ev) != newVal {
				return false
			}
		case float64:
			if int(ev) != newVal {
				return false
			}
		default:
			return false
		}
	}

	if unique, ok := existingIndex["unique"].(bool); ok && opts.Unique != nil {
		if unique != *opts.Unique {
			return false
		}
	} else if opts.Unique != nil && *opts.Unique {
		// Índice antigo não é unique e o novo é: mismatch
		return false
	}

	return true
}

// checkAndReplaceIndex garante que o índice exista com a configuração desejada.
// Se existir com configuração diferente, remove e recria. A comparação usa os
// metadados estruturados do índice, nunca o texto de mensagens de erro.
func checkAndReplaceIndex(
	ctx context.Context,
	collection *mongo.Collection,
	existingIndexes map[string]bson.M,
	indexName string,
	keys bson.D,
	opts *options.IndexOptions,
) error {
	log := logger.GetPipelineLogger()

	if existingIndex, exists := existingIndexes[indexName]; exists {
		if compareIndex(existingIndex, keys, opts) {
			log.Debugf("Índice %s já existe com a configuração correta", indexName)
			return nil
		}
		if _, err := collection.Indexes().DropOne(ctx, indexName); err != nil {
			return fmt.Errorf("não foi possível remover o índice %s: %w", indexName, err)
		}
		log.Infof("Índice antigo removido: %s", indexName)
	}

	if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: opts,
	}); err != nil {
		if common.IsIndexConflict(err) {
			// Definição conflitante criada fora do pipeline: remove e tenta uma vez mais.
			if _, dropErr := collection.Indexes().DropOne(ctx, indexName); dropErr != nil {
				return fmt.Errorf("conflito no índice %s e a remoção falhou: %w", indexName, dropErr)
			}
			if _, retryErr := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts}); retryErr != nil {
				return fmt.Errorf("não foi possível recriar o índice %s: %w", indexName, retryErr)
			}
			log.Infof("Índice recriado após conflito: %s", indexName)
			return nil
		}
		return fmt.Errorf("não foi possível criar o índice %s: %w", indexName, err)
	}
	log.Infof("Índice criado: %s", indexName)
	return nil
}

// CreateIndexes cria os índices declarados nas tags `index` do model.
// Suporta "single" (campo isolado), "unique" (campo isolado com restrição de
// unicidade) e "compound:<nome>" (grupos compostos montados na ordem dos campos).
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("não foi possível listar os índices: %w", err)
	}
	defer cursor.Close(ctx)

	existingIndexes := map[string]bson.M{}
	for cursor.Next(ctx) {
		var indexInfo bson.M
		if err := cursor.Decode(&indexInfo); err != nil {
			return fmt.Errorf("não foi possível decodificar informação de índice: %w", err)
		}
		if name, ok := indexInfo["name"].(string); ok {
			existingIndexes[name] = indexInfo
		}
	}

	compoundGroups := map[string]bson.D{}
	compoundOrder := []string{}

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}

		bsonField := strings.Split(field.Tag.Get("bson"), ",")[0]
		if bsonField == "" || bsonField == "-" {
			continue
		}

		for _, cfg := range parseIndexTag(tag) {
			if _, ok := cfg["single"]; ok {
				keys := bson.D{{Key: bsonField, Value: parseOrder(tag)}}
				indexName := bsonField + "_single"
				opts := options.Index().SetName(indexName)
				if err := checkAndReplaceIndex(ctx, collection, existingIndexes, indexName, keys, opts); err != nil {
					return err
				}
			}

			if _, ok := cfg["unique"]; ok {
				keys := bson.D{{Key: bsonField, Value: 1}}
				indexName := bsonField + "_unique"
				opts := options.Index().SetName(indexName).SetUnique(true)
				if err := checkAndReplaceIndex(ctx, collection, existingIndexes, indexName, keys, opts); err != nil {
					return err
				}
			}

			if groupName, ok := cfg["compound"]; ok && groupName != "" {
				if _, exists := compoundGroups[groupName]; !exists {
					compoundOrder = append(compoundOrder, groupName)
				}
				compoundGroups[groupName] = append(compoundGroups[groupName], bson.E{Key: bsonField, Value: parseOrder(tag)})
			}
		}
	}

	for _, groupName := range compoundOrder {
		opts := options.Index().SetName(groupName)
		if err := checkAndReplaceIndex(ctx, collection, existingIndexes, groupName, compoundGroups[groupName], opts); err != nil {
			return err
		}
	}

	return nil
}
